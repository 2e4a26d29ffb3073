// Package user defines member accounts and their field validation rules.
package user

import (
	"errors"
	"regexp"
	"time"

	"github.com/example/zyrix-club/internal/domain/order"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("an account with that email already exists")
	ErrNotVerified    = errors.New("account is not verified")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrInvalidPhone   = errors.New("phone must have the form ddd-ddd")
	ErrNameRequired   = errors.New("first and last name are required")
)

var (
	emailRe = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[A-Za-z]{2,}$`)
	phoneRe = regexp.MustCompile(`^\d{3}-\d{3}$`)
)

// User is a member account keyed by email. Email is immutable once created.
// PendingCode is non-empty only while Verified is false.
type User struct {
	Email          string        `json:"email"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Phone          string        `json:"phone"`
	PasswordDigest string        `json:"password_digest"`
	Role           Role          `json:"role"`
	Verified       bool          `json:"verified"`
	PendingCode    string        `json:"pending_code,omitempty"`
	Orders         []order.Order `json:"orders"`
	CreatedAt      time.Time     `json:"created_at"`
}

// ValidateEmail reports whether email has the accepted shape. The admin
// bootstrap identity is exempt from this check; it is a reserved name, not
// an address.
func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidatePhone reports whether phone matches ddd-ddd.
func ValidatePhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// Validate checks the registration fields of u. The password digest and
// role are not inspected; those are set by the auth layer and repository.
func (u User) Validate() error {
	if u.FirstName == "" || u.LastName == "" {
		return ErrNameRequired
	}
	if !ValidateEmail(u.Email) {
		return ErrInvalidEmail
	}
	if !ValidatePhone(u.Phone) {
		return ErrInvalidPhone
	}
	return nil
}
