package auth

import (
	"fmt"
	"strings"
)

// minSecretLength is the minimum JWT_SECRET length in bytes (256 bits for HS256).
const minSecretLength = 32

// weakSecretList contains well-known placeholder secrets that must be rejected.
var weakSecretList = []string{
	"secret",
	"changeme",
	"password",
	"aniexo-secret-key",
	"your-secret-key",
	"jwt-secret",
	"default",
	"test",
}

// ValidateJWTSecret checks JWT_SECRET at startup, before account routes are mounted.
// The returned error never contains the secret itself.
func ValidateJWTSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be empty")
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must be at least %d bytes (current length: %d)", minSecretLength, len(secret))
	}
	if isRepeatedChar(secret) {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be a single repeated character")
	}

	lower := strings.ToLower(secret)
	for _, weak := range weakSecretList {
		// 既知の弱いシークレットを繰り返しただけのものも拒否
		if strings.Trim(strings.ReplaceAll(lower, weak, ""), "-_0123456789") == "" {
			return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be based on a well-known placeholder")
		}
	}
	return nil
}

// isRepeatedChar checks if s consists of a single repeated character.
func isRepeatedChar(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
