// Package auth covers credential handling: password digesting, login and
// local session tokens.
package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordNeedsDigit = errors.New("password must contain at least one digit")
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
)

// ValidatePassword checks the club's password policy.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if !strings.ContainsAny(password, "0123456789") {
		return ErrPasswordNeedsDigit
	}
	return nil
}

// HashPassword digests a password using bcrypt. Plaintext is never stored
// or compared.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a password with its digest.
func CheckPassword(password, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	return err == nil
}
