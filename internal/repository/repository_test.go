package repository

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/example/zyrix-club/internal/kvstore"
	"github.com/example/zyrix-club/internal/store"
)

func newTestSnapshotStore(t *testing.T) *store.Store {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	boot := store.Bootstrap{
		Email:          "sebastian",
		PasswordDigest: "digest",
		FirstName:      "Sebastian",
		LastName:       "Admin",
		Phone:          "000-000",
	}
	return store.New(kvstore.NewMemory(), boot, log)
}

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }
func boolptr(b bool) *bool    { return &b }
