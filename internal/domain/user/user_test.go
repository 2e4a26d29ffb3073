package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"plain address", "ana@club.do", true},
		{"dotted local part", "ana.gomez@club.org", true},
		{"missing at", "ana.club.do", false},
		{"missing tld", "ana@club", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateEmail(tt.email))
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"well formed", "809-123", true},
		{"bootstrap placeholder", "000-000", true},
		{"no dash", "809123", false},
		{"too long", "809-1234", false},
		{"letters", "abc-def", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidatePhone(tt.phone))
		})
	}
}

func TestUserValidate(t *testing.T) {
	valid := User{Email: "ana@club.do", FirstName: "Ana", LastName: "Gomez", Phone: "809-123"}

	assert.NoError(t, valid.Validate())

	noName := valid
	noName.FirstName = ""
	assert.ErrorIs(t, noName.Validate(), ErrNameRequired)

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.ErrorIs(t, badEmail.Validate(), ErrInvalidEmail)

	badPhone := valid
	badPhone.Phone = "8091-23"
	assert.ErrorIs(t, badPhone.Validate(), ErrInvalidPhone)
}
