// Package store owns the persistent snapshot: loading, saving and mutating
// the one serialized record that holds every entity. All writes funnel
// through a single mutex so read-modify-write cycles cannot interleave, and
// each committed snapshot carries a version number so a stale Save is
// detected instead of silently losing the other writer's update.
package store

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/zyrix-club/internal/domain/order"
	"github.com/example/zyrix-club/internal/domain/user"
)

var snapshotKey = []byte("snapshot")

// ErrSnapshotConflict is returned by Save when the snapshot was committed by
// another writer after the caller loaded it. Callers using Update never see
// it.
var ErrSnapshotConflict = errors.New("snapshot modified since load")

// Bootstrap describes the administrator record created on first load. The
// digest is precomputed by the caller; the store never sees a plaintext
// password.
type Bootstrap struct {
	Email          string
	PasswordDigest string
	FirstName      string
	LastName       string
	Phone          string
}

// Store reads and writes the snapshot record in a key-value byte store.
type Store struct {
	mu   sync.Mutex
	kv   KV
	boot Bootstrap
	log  *logrus.Logger
}

// KV is the slice of the byte store the snapshot needs.
type KV interface {
	Get(key []byte) ([]byte, bool, error)
	Put(key, value []byte) error
}

// New creates a snapshot store over kv. boot may be zero to skip the admin
// bootstrap.
func New(kv KV, boot Bootstrap, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	return &Store{kv: kv, boot: boot, log: log}
}

// Load returns the current snapshot. Missing or unreadable bytes yield the
// default schema rather than an error; the first load that finds the
// reserved admin identity absent creates it. The returned snapshot is the
// caller's own copy.
func (s *Store) Load() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Save serializes snap and replaces the persisted record. It fails with
// ErrSnapshotConflict when snap's version no longer matches the stored one.
func (s *Store) Save(snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadLocked()
	if err != nil {
		return err
	}
	if snap.Version != current.Version {
		return ErrSnapshotConflict
	}
	return s.saveLocked(snap)
}

// Update runs fn against the current snapshot and commits the result, all
// under the store lock. An error from fn aborts the commit and is returned
// unchanged; the persisted record is untouched. This is the transaction
// boundary every repository and the checkout use.
func (s *Store) Update(fn func(*Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return s.saveLocked(snap)
}

func (s *Store) loadLocked() (*Snapshot, error) {
	raw, ok, err := s.kv.Get(snapshotKey)
	if err != nil {
		return nil, err
	}

	snap := defaultSnapshot()
	if ok {
		if err := json.Unmarshal(raw, snap); err != nil {
			s.log.WithError(err).Warn("snapshot bytes unreadable, resetting to default schema")
			snap = defaultSnapshot()
		}
	}

	if s.boot.Email != "" && snap.FindUser(s.boot.Email) == nil {
		snap.Users = append(snap.Users, user.User{
			Email:          s.boot.Email,
			FirstName:      s.boot.FirstName,
			LastName:       s.boot.LastName,
			Phone:          s.boot.Phone,
			PasswordDigest: s.boot.PasswordDigest,
			Role:           user.RoleAdmin,
			Verified:       true,
			Orders:         []order.Order{},
			CreatedAt:      time.Now(),
		})
		if err := s.saveLocked(snap); err != nil {
			return nil, err
		}
		// Hand back the decoded form so repeated loads are identical
		return s.loadLocked()
	}
	return snap, nil
}

func (s *Store) saveLocked(snap *Snapshot) error {
	snap.Version++
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.kv.Put(snapshotKey, raw)
}
