package store

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/zyrix-club/internal/domain/product"
	"github.com/example/zyrix-club/internal/domain/user"
	"github.com/example/zyrix-club/internal/kvstore"
)

var testBootstrap = Bootstrap{
	Email:          "sebastian",
	PasswordDigest: "digest-of-colestre11",
	FirstName:      "Sebastian",
	LastName:       "Admin",
	Phone:          "000-000",
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(kvstore.NewMemory(), testBootstrap, log)
}

// ============================================
// Load Tests
// ============================================

func TestLoad_EmptyStoreYieldsDefaultSchema(t *testing.T) {
	s := newTestStore(t)

	snap, err := s.Load()

	require.NoError(t, err)
	assert.Empty(t, snap.Products)
	assert.Empty(t, snap.Sponsors)
	assert.Empty(t, snap.Orders)
	assert.Equal(t, 1, snap.NextOrderSeq)
}

func TestLoad_BootstrapsAdminOnce(t *testing.T) {
	s := newTestStore(t)

	snap, err := s.Load()
	require.NoError(t, err)

	require.Len(t, snap.Users, 1)
	admin := snap.Users[0]
	assert.Equal(t, "sebastian", admin.Email)
	assert.Equal(t, user.RoleAdmin, admin.Role)
	assert.True(t, admin.Verified)
	assert.Equal(t, "digest-of-colestre11", admin.PasswordDigest)

	again, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, again.Users, 1)
}

func TestLoad_IsIdempotent(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Load()
	require.NoError(t, err)
	second, err := s.Load()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoad_CorruptBytesSelfHeal(t *testing.T) {
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Put([]byte("snapshot"), []byte("{not json")))
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	s := New(kv, testBootstrap, log)

	snap, err := s.Load()

	require.NoError(t, err)
	assert.Equal(t, 1, snap.NextOrderSeq)
	require.Len(t, snap.Users, 1)
	assert.Equal(t, "sebastian", snap.Users[0].Email)
}

func TestLoad_ReturnsIndependentCopies(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Update(func(snap *Snapshot) error {
		snap.Products = append(snap.Products, product.Product{ID: "p1", Title: "Botella", Price: 450, Stock: 3})
		return nil
	}))

	first, err := s.Load()
	require.NoError(t, err)
	first.Products[0].Stock = 0

	second, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, second.Products[0].Stock)
}

// ============================================
// Save / Update Tests
// ============================================

func TestSave_PersistsChanges(t *testing.T) {
	s := newTestStore(t)
	snap, err := s.Load()
	require.NoError(t, err)

	snap.Products = append(snap.Products, product.Product{ID: "p1", Title: "Botella", Price: 450, Stock: 3})
	require.NoError(t, s.Save(snap))

	reloaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, reloaded.Products, 1)
	assert.Equal(t, "Botella", reloaded.Products[0].Title)
}

func TestSave_StaleSnapshotConflicts(t *testing.T) {
	s := newTestStore(t)
	stale, err := s.Load()
	require.NoError(t, err)

	require.NoError(t, s.Update(func(snap *Snapshot) error {
		snap.NextOrderSeq = 7
		return nil
	}))

	stale.NextOrderSeq = 99
	assert.ErrorIs(t, s.Save(stale), ErrSnapshotConflict)

	reloaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.NextOrderSeq)
}

func TestUpdate_ErrorAbortsCommit(t *testing.T) {
	s := newTestStore(t)
	before, err := s.Load()
	require.NoError(t, err)

	sentinel := assert.AnError
	err = s.Update(func(snap *Snapshot) error {
		snap.NextOrderSeq = 42
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	after, loadErr := s.Load()
	require.NoError(t, loadErr)
	assert.Equal(t, before, after)
}
