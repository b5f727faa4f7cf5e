package auth

import (
	"net/mail"
	"strings"
)

// ValidateCredentials checks login input before it is sent to the API.
// It returns the trimmed, lower-cased email.
func ValidateCredentials(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrEmailRequired
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email || !strings.Contains(email, ".") {
		return "", ErrInvalidEmail
	}
	if password == "" {
		return "", ErrPasswordRequired
	}
	return email, nil
}
