// Package verification issues and consumes the one-time registration codes
// gating account activation.
package verification

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/example/zyrix-club/internal/domain/user"
	"github.com/example/zyrix-club/internal/store"
)

var (
	ErrCodeMismatch    = errors.New("verification code does not match")
	ErrNoPending       = errors.New("no pending verification for this account")
	ErrAlreadyVerified = errors.New("account is already verified")
)

// Service manages verification codes. A code is three uppercase letters, a
// dash and three digits; codes are single-use per registration attempt and
// not checked for global uniqueness.
type Service struct {
	store *store.Store
}

func New(s *store.Store) *Service {
	return &Service{store: s}
}

const codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func generateCode() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return fmt.Sprintf("%c%c%c-%d%d%d",
		codeLetters[int(buf[0])%len(codeLetters)],
		codeLetters[int(buf[1])%len(codeLetters)],
		codeLetters[int(buf[2])%len(codeLetters)],
		int(buf[3])%10, int(buf[4])%10, int(buf[5])%10)
}

// Issue generates a code for an unverified account, overwriting any
// outstanding one, and returns it for delivery.
func (s *Service) Issue(email string) (string, error) {
	code := generateCode()
	err := s.store.Update(func(snap *store.Snapshot) error {
		u := snap.FindUser(email)
		if u == nil {
			return user.ErrNotFound
		}
		if u.Verified {
			return ErrAlreadyVerified
		}
		u.PendingCode = code
		return nil
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// Consume checks the supplied code against the outstanding one. On success
// the account is marked verified and the code cleared in the same update;
// the code cannot be used again.
func (s *Service) Consume(email, supplied string) error {
	return s.store.Update(func(snap *store.Snapshot) error {
		u := snap.FindUser(email)
		if u == nil {
			return user.ErrNotFound
		}
		if u.PendingCode == "" {
			return ErrNoPending
		}
		if supplied != u.PendingCode {
			return ErrCodeMismatch
		}
		u.Verified = true
		u.PendingCode = ""
		return nil
	})
}

// Reissue regenerates the outstanding code without touching the verified
// flag. A verified account has nothing to reissue.
func (s *Service) Reissue(email string) (string, error) {
	code, err := s.Issue(email)
	if errors.Is(err, ErrAlreadyVerified) {
		return "", ErrNoPending
	}
	return code, err
}
