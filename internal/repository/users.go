// Package repository provides the typed CRUD façades over the snapshot
// store. Repositories hold no state of their own: every call re-reads the
// snapshot, so each observes the latest committed write and the returned
// records are the caller's own copies.
package repository

import (
	"time"

	"github.com/example/zyrix-club/internal/domain/order"
	"github.com/example/zyrix-club/internal/domain/user"
	"github.com/example/zyrix-club/internal/store"
)

// Users is the member account repository. Email uniqueness is enforced here,
// in Create, not left to callers.
type Users struct {
	store *store.Store
}

func NewUsers(s *store.Store) *Users {
	return &Users{store: s}
}

// List returns all accounts in snapshot order.
func (r *Users) List() ([]user.User, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return snap.Users, nil
}

// FindByEmail returns the account with the given email, or user.ErrNotFound.
func (r *Users) FindByEmail(email string) (*user.User, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	u := snap.FindUser(email)
	if u == nil {
		return nil, user.ErrNotFound
	}
	return u, nil
}

// Create validates u, applies field defaults and appends it. A duplicate
// email fails with user.ErrDuplicateEmail.
func (r *Users) Create(u user.User) (*user.User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if u.Role == "" {
		u.Role = user.RoleUser
	}
	if u.Orders == nil {
		u.Orders = []order.Order{}
	}
	u.CreatedAt = time.Now()

	err := r.store.Update(func(snap *store.Snapshot) error {
		if snap.FindUser(u.Email) != nil {
			return user.ErrDuplicateEmail
		}
		snap.Users = append(snap.Users, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ProfileUpdate is the set of account fields a member may change. Nil fields
// are left untouched; set fields are validated before anything is applied.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

// UpdateProfile applies a validated patch to the account with the given
// email and returns the stored result.
func (r *Users) UpdateProfile(email string, patch ProfileUpdate) (*user.User, error) {
	if patch.FirstName != nil && *patch.FirstName == "" {
		return nil, user.ErrNameRequired
	}
	if patch.LastName != nil && *patch.LastName == "" {
		return nil, user.ErrNameRequired
	}
	if patch.Phone != nil && !user.ValidatePhone(*patch.Phone) {
		return nil, user.ErrInvalidPhone
	}

	var updated user.User
	err := r.store.Update(func(snap *store.Snapshot) error {
		u := snap.FindUser(email)
		if u == nil {
			return user.ErrNotFound
		}
		if patch.FirstName != nil {
			u.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			u.LastName = *patch.LastName
		}
		if patch.Phone != nil {
			u.Phone = *patch.Phone
		}
		updated = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the account with the given email. A missing account is an
// explicit user.ErrNotFound, not a silent no-op.
func (r *Users) Delete(email string) error {
	return r.store.Update(func(snap *store.Snapshot) error {
		for i := range snap.Users {
			if snap.Users[i].Email == email {
				snap.Users = append(snap.Users[:i], snap.Users[i+1:]...)
				return nil
			}
		}
		return user.ErrNotFound
	})
}
