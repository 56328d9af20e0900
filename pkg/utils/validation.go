package utils

import (
	"regexp"
	"strings"

	"bookstreak/pkg/models"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailRegex    = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)
)

// ValidateUsername checks username shape: 3-30 chars, alphanumeric or underscore
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return models.ErrInvalidInput
	}
	return nil
}

// ValidateEmail checks basic email shape
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return models.ErrInvalidInput
	}
	return nil
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) error {
	if len(password) < 6 || len(password) > 128 {
		return models.ErrInvalidInput
	}
	return nil
}
