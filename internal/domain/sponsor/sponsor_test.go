package sponsor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to active", StatusPending, StatusActive, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"active is terminal", StatusActive, StatusRejected, false},
		{"active cannot reopen", StatusActive, StatusPending, false},
		{"rejected is terminal", StatusRejected, StatusActive, false},
		{"rejected cannot reopen", StatusRejected, StatusPending, false},
		{"pending cannot stay via transition", StatusPending, StatusPending, false},
		{"unknown status", Status("limbo"), StatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Sponsor{Status: tt.from}
			assert.Equal(t, tt.allowed, s.CanTransitionTo(tt.to))
		})
	}
}

func TestTransitionError(t *testing.T) {
	decided := &Sponsor{Status: StatusActive}
	assert.ErrorIs(t, decided.TransitionError(StatusRejected), ErrAlreadyDecided)

	pending := &Sponsor{Status: StatusPending}
	assert.ErrorIs(t, pending.TransitionError(StatusPending), ErrInvalidTransition)
}

func TestValidate(t *testing.T) {
	ok := Sponsor{Rep: "Luis", Brand: "Acme"}
	assert.NoError(t, ok.Validate())

	assert.ErrorIs(t, Sponsor{Brand: "Acme"}.Validate(), ErrRepRequired)
	assert.ErrorIs(t, Sponsor{Rep: "Luis"}.Validate(), ErrBrandRequired)
}
