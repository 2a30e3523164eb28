package utils

import (
	"fmt"
	"regexp"
)

var (
	emailRegex       = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex       = regexp.MustCompile(`^\+?[0-9 ()\-]{6,20}$`)
	controlCharRegex = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidatePhone validates a phone number loosely: digits, spaces,
// parentheses and dashes, optionally prefixed with +
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("invalid phone format: %s", phone)
	}
	return nil
}

// SanitizeString removes control characters
func SanitizeString(s string) string {
	return controlCharRegex.ReplaceAllString(s, "")
}
