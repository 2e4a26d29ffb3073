package repository

import (
	"github.com/example/zyrix-club/internal/domain/order"
	"github.com/example/zyrix-club/internal/store"
)

// Orders is the read-only order repository. Orders are minted solely by the
// checkout transaction and never deleted, so their sequence numbers are
// never reused.
type Orders struct {
	store *store.Store
}

func NewOrders(s *store.Store) *Orders {
	return &Orders{store: s}
}

// List returns every order in commit order.
func (r *Orders) List() ([]order.Order, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return snap.Orders, nil
}

// ListByUser returns the orders committed for the given buyer.
func (r *Orders) ListByUser(email string) ([]order.Order, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	out := make([]order.Order, 0)
	for _, o := range snap.Orders {
		if o.UserEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}
