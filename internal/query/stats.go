// Package query provides the read-only aggregates the admin console shows.
package query

import (
	"github.com/example/zyrix-club/internal/domain/sponsor"
	"github.com/example/zyrix-club/internal/store"
)

// Stats is the admin dashboard aggregate, recomputed from the snapshot on
// every call.
type Stats struct {
	TotalUsers      int `json:"total_users"`
	VerifiedUsers   int `json:"verified_users"`
	TotalOrders     int `json:"total_orders"`
	TotalRevenue    int `json:"total_revenue"`
	TotalProducts   int `json:"total_products"`
	ProductsInStock int `json:"products_in_stock"`
	ActiveSponsors  int `json:"active_sponsors"`
	PendingSponsors int `json:"pending_sponsors"`
}

type Handler struct {
	store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

// Stats computes the dashboard aggregate.
func (h *Handler) Stats() (*Stats, error) {
	snap, err := h.store.Load()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalUsers:    len(snap.Users),
		TotalOrders:   len(snap.Orders),
		TotalProducts: len(snap.Products),
	}
	for _, u := range snap.Users {
		if u.Verified {
			stats.VerifiedUsers++
		}
	}
	for _, o := range snap.Orders {
		stats.TotalRevenue += o.Total
	}
	for _, p := range snap.Products {
		if p.Stock > 0 {
			stats.ProductsInStock++
		}
	}
	for _, sp := range snap.Sponsors {
		switch sp.Status {
		case sponsor.StatusActive:
			stats.ActiveSponsors++
		case sponsor.StatusPending:
			stats.PendingSponsors++
		}
	}
	return stats, nil
}
