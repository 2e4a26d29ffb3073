package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/zyrix-club/internal/domain/user"
)

func newTestSessions(expiry time.Duration) *SessionService {
	return NewSessionService("test-secret", expiry)
}

func TestSessionIssueAndValidate(t *testing.T) {
	sessions := newTestSessions(time.Hour)
	u := &user.User{Email: "ana@club.do", Role: user.RoleUser}

	token, expiresAt, err := sessions.Issue(u)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := sessions.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@club.do", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestSessionValidate_WrongSecret(t *testing.T) {
	token, _, err := newTestSessions(time.Hour).Issue(&user.User{Email: "ana@club.do", Role: user.RoleUser})
	require.NoError(t, err)

	other := NewSessionService("different-secret", time.Hour)
	_, err = other.Validate(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionValidate_Expired(t *testing.T) {
	sessions := newTestSessions(-time.Minute)
	token, _, err := sessions.Issue(&user.User{Email: "ana@club.do", Role: user.RoleUser})
	require.NoError(t, err)

	_, err = sessions.Validate(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestSessionValidate_Garbage(t *testing.T) {
	sessions := newTestSessions(time.Hour)

	_, err := sessions.Validate("not.a.token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
