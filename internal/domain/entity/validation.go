package entity

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt ignores bytes past 72
	minUsernameLength = 3
	maxUsernameLength = 32
	maxTitleLength    = 512
)

// ValidateEmail checks that email is a bare address (no display name).
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "email is not a valid address"}
	}
	return nil
}

// ValidateUsername checks length and that the name has no whitespace.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLength || n > maxUsernameLength {
		return &ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength),
		}
	}
	if strings.ContainsAny(username, " \t\r\n") {
		return &ValidationError{Field: "username", Message: "username must not contain whitespace"}
	}
	return nil
}

// ValidatePassword checks the byte length bcrypt can handle.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		}
	}
	if len(password) > maxPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must not exceed %d bytes", maxPasswordLength),
		}
	}
	return nil
}

// ValidateAnimeID checks that id is a positive upstream id.
func ValidateAnimeID(id int64) error {
	if id <= 0 {
		return &ValidationError{Field: "animeId", Message: "anime id must be a positive integer"}
	}
	return nil
}

// ValidateAnimeTitle checks the denormalised title stored with favorites and history.
func ValidateAnimeTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "animeTitle", Message: "anime title is required"}
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return &ValidationError{
			Field:   "animeTitle",
			Message: fmt.Sprintf("anime title must not exceed %d characters", maxTitleLength),
		}
	}
	return nil
}
