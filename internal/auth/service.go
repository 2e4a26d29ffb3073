package auth

import (
	"errors"

	"github.com/example/zyrix-club/internal/domain/user"
	"github.com/example/zyrix-club/internal/repository"
	"github.com/example/zyrix-club/internal/verification"
)

// ErrInvalidCredentials is returned for an unknown email and for a wrong
// password alike, so login failures do not reveal which part was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service handles registration and login against the user repository.
type Service struct {
	users    *repository.Users
	codes    *verification.Service
	sessions *SessionService
}

func NewService(users *repository.Users, codes *verification.Service, sessions *SessionService) *Service {
	return &Service{users: users, codes: codes, sessions: sessions}
}

// Register validates the supplied fields, creates the account unverified and
// issues its verification code. The code is returned for delivery to the
// member.
func (s *Service) Register(email, firstName, lastName, phone, password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	digest, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	_, err = s.users.Create(user.User{
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		Phone:          phone,
		PasswordDigest: digest,
		Role:           user.RoleUser,
	})
	if err != nil {
		return "", err
	}

	return s.codes.Issue(email)
}

// Login checks the credentials and the verified flag, then issues a session
// token for the account.
func (s *Service) Login(email, password string) (string, *user.User, error) {
	u, err := s.users.FindByEmail(email)
	if errors.Is(err, user.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !CheckPassword(password, u.PasswordDigest) {
		return "", nil, ErrInvalidCredentials
	}
	if !u.Verified {
		return "", nil, user.ErrNotVerified
	}

	token, _, err := s.sessions.Issue(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
