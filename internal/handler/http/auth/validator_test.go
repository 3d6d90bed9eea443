package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateJWTSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr string
	}{
		{"十分な長さ", testSecret, ""},
		{"ランダム文字列にtestを含む", "prod-test-7f3a9c2e5b8d1f4a6c9e2b5d8f1a4c7e", ""},
		{"空", "", "must not be empty"},
		{"短い", "short-secret", "at least 32 bytes"},
		{"同一文字の繰り返し", strings.Repeat("a", 40), "single repeated character"},
		{"既知のプレースホルダ", strings.Repeat("secret", 6), "well-known placeholder"},
		{"既知のプレースホルダ＋数字", "aniexo-secret-key-aniexo-secret-key-123", "well-known placeholder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJWTSecret(tt.secret)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
				if tt.secret != "" {
					assert.NotContains(t, err.Error(), tt.secret)
				}
			}
		})
	}
}
