// Package sponsor defines sponsorship requests and their one-way status
// transitions.
package sponsor

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusRejected Status = "rejected"
)

var (
	ErrNotFound          = errors.New("sponsor request not found")
	ErrRepRequired       = errors.New("representative name is required")
	ErrBrandRequired     = errors.New("brand is required")
	ErrInvalidTransition = errors.New("invalid sponsor status transition")
	ErrAlreadyDecided    = errors.New("sponsor request already decided")
)

// validTransitions defines allowed status transitions. Active and rejected
// are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:  {StatusActive, StatusRejected},
	StatusActive:   {},
	StatusRejected: {},
}

// Sponsor is a sponsorship request submitted through the intake form.
type Sponsor struct {
	ID           string    `json:"id"`
	Rep          string    `json:"rep"`
	ContactEmail string    `json:"contact_email"`
	Brand        string    `json:"brand"`
	Rationale    string    `json:"rationale"`
	Offer        string    `json:"offer"`
	Expectation  string    `json:"expectation"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// CanTransitionTo checks if the request can move to the target status.
func (s *Sponsor) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[s.Status]
	if !exists {
		return false
	}
	for _, st := range allowed {
		if st == target {
			return true
		}
	}
	return false
}

// TransitionError returns the error describing why a move to target is
// illegal.
func (s *Sponsor) TransitionError(target Status) error {
	if s.Status == StatusActive || s.Status == StatusRejected {
		return fmt.Errorf("%w: already %s", ErrAlreadyDecided, s.Status)
	}
	return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, s.Status, target)
}

// Validate checks the intake fields of s.
func (s Sponsor) Validate() error {
	if s.Rep == "" {
		return ErrRepRequired
	}
	if s.Brand == "" {
		return ErrBrandRequired
	}
	return nil
}
