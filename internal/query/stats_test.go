package query

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/zyrix-club/internal/domain/order"
	"github.com/example/zyrix-club/internal/domain/product"
	"github.com/example/zyrix-club/internal/domain/sponsor"
	"github.com/example/zyrix-club/internal/domain/user"
	"github.com/example/zyrix-club/internal/kvstore"
	"github.com/example/zyrix-club/internal/store"
)

func TestStats(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	st := store.New(kvstore.NewMemory(), store.Bootstrap{}, log)

	require.NoError(t, st.Update(func(snap *store.Snapshot) error {
		snap.Users = append(snap.Users,
			user.User{Email: "a@club.do", Verified: true},
			user.User{Email: "b@club.do", Verified: false},
			user.User{Email: "c@club.do", Verified: true},
		)
		snap.Products = append(snap.Products,
			product.Product{ID: "p1", Title: "Botella", Price: 450, Stock: 3},
			product.Product{ID: "p2", Title: "Agotado", Price: 100, Stock: 0},
		)
		snap.Sponsors = append(snap.Sponsors,
			sponsor.Sponsor{ID: "s1", Status: sponsor.StatusActive},
			sponsor.Sponsor{ID: "s2", Status: sponsor.StatusPending},
			sponsor.Sponsor{ID: "s3", Status: sponsor.StatusRejected},
		)
		snap.Orders = append(snap.Orders,
			order.Order{ID: "o1", Total: 900},
			order.Order{ID: "o2", Total: 450},
		)
		return nil
	}))

	stats, err := NewHandler(st).Stats()

	require.NoError(t, err)
	assert.Equal(t, &Stats{
		TotalUsers:      3,
		VerifiedUsers:   2,
		TotalOrders:     2,
		TotalRevenue:    1350,
		TotalProducts:   2,
		ProductsInStock: 1,
		ActiveSponsors:  1,
		PendingSponsors: 1,
	}, stats)
}

func TestStats_EmptyStore(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	st := store.New(kvstore.NewMemory(), store.Bootstrap{}, log)

	stats, err := NewHandler(st).Stats()

	require.NoError(t, err)
	assert.Equal(t, &Stats{}, stats)
}
