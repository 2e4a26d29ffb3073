package store

import (
	"github.com/example/zyrix-club/internal/domain/order"
	"github.com/example/zyrix-club/internal/domain/product"
	"github.com/example/zyrix-club/internal/domain/sponsor"
	"github.com/example/zyrix-club/internal/domain/user"
)

// Snapshot is the single persisted record: every entity collection plus the
// order-sequence counter. It is serialized and replaced as a whole; there is
// no partial write.
type Snapshot struct {
	Users        []user.User       `json:"users"`
	Products     []product.Product `json:"products"`
	Sponsors     []sponsor.Sponsor `json:"sponsors"`
	Orders       []order.Order     `json:"orders"`
	NextOrderSeq int               `json:"next_order_sequence"`
	Version      int               `json:"version"`
}

func defaultSnapshot() *Snapshot {
	return &Snapshot{
		Users:        []user.User{},
		Products:     []product.Product{},
		Sponsors:     []sponsor.Sponsor{},
		Orders:       []order.Order{},
		NextOrderSeq: 1,
	}
}

// FindUser returns a pointer into the snapshot's user slice, or nil. The
// pointer is only valid until the snapshot is discarded.
func (s *Snapshot) FindUser(email string) *user.User {
	for i := range s.Users {
		if s.Users[i].Email == email {
			return &s.Users[i]
		}
	}
	return nil
}

// FindProduct returns a pointer into the snapshot's product slice, or nil.
func (s *Snapshot) FindProduct(id string) *product.Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// FindSponsor returns a pointer into the snapshot's sponsor slice, or nil.
func (s *Snapshot) FindSponsor(id string) *sponsor.Sponsor {
	for i := range s.Sponsors {
		if s.Sponsors[i].ID == id {
			return &s.Sponsors[i]
		}
	}
	return nil
}
