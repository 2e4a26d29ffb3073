// Package checkout implements the purchase transaction: cart to committed
// order, all-or-nothing.
package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/example/zyrix-club/internal/cart"
	"github.com/example/zyrix-club/internal/domain/order"
	"github.com/example/zyrix-club/internal/domain/user"
	"github.com/example/zyrix-club/internal/store"
)

var (
	// ErrProductMissing marks a cart line whose product was deleted after it
	// was added.
	ErrProductMissing = errors.New("product no longer available")
	// ErrInsufficientStock marks a cart line asking for more than the live
	// stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
)

// Service runs checkouts. The whole transaction executes inside one snapshot
// update, so the stock decrements, the sequence counter increment and the
// order append land in a single write or not at all.
type Service struct {
	store *store.Store
	carts *cart.Service
	log   *logrus.Logger
}

func New(st *store.Store, carts *cart.Service, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{store: st, carts: carts, log: log}
}

// Checkout converts the buyer's cart into a committed order.
//
// Every line is validated against the live product before anything mutates:
// a missing product or a short stock aborts the transaction with nothing
// applied and the cart untouched. On success each product's stock is
// decremented, the order is minted with the next sequence number and the
// total computed from live prices (cart prices are display-only), the order
// is appended globally and to the buyer's history, and the cart is cleared.
func (s *Service) Checkout(email string) (*order.Order, error) {
	c, err := s.carts.Get(email)
	if err != nil {
		return nil, err
	}
	if len(c) == 0 {
		return nil, ErrEmptyCart
	}

	var committed order.Order
	err = s.store.Update(func(snap *store.Snapshot) error {
		buyer := snap.FindUser(email)
		if buyer == nil {
			return user.ErrNotFound
		}
		if !buyer.Verified {
			return user.ErrNotVerified
		}

		ids := c.ProductIDs()

		// Validate everything before mutating anything.
		for _, id := range ids {
			p := snap.FindProduct(id)
			if p == nil {
				return fmt.Errorf("%w: %s", ErrProductMissing, id)
			}
			if c[id].Quantity > p.Stock {
				return fmt.Errorf("%w: %s has %d left, cart wants %d",
					ErrInsufficientStock, p.Title, p.Stock, c[id].Quantity)
			}
		}

		now := time.Now()
		items := make([]order.Item, 0, len(ids))
		total := 0
		for _, id := range ids {
			p := snap.FindProduct(id)
			qty := c[id].Quantity
			p.Stock -= qty
			items = append(items, order.Item{
				ProductID: p.ID,
				Title:     p.Title,
				UnitPrice: p.Price,
				Quantity:  qty,
			})
			total += p.Price * qty
		}

		seq := snap.NextOrderSeq
		snap.NextOrderSeq++

		committed = order.Order{
			ID:        uuid.New().String(),
			Number:    order.FormatNumber(seq, now),
			UserEmail: email,
			Items:     items,
			Total:     total,
			Currency:  order.Currency,
			CreatedAt: now,
		}
		snap.Orders = append(snap.Orders, committed)
		buyer.Orders = append(buyer.Orders, committed)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(email); err != nil {
		// The order is already committed; a stuck cart record is re-validated
		// at the next checkout anyway.
		s.log.WithError(err).WithField("email", email).Warn("cart clear failed after checkout")
	}

	s.log.WithFields(logrus.Fields{
		"order": committed.Number,
		"email": email,
		"total": committed.Total,
		"items": len(committed.Items),
	}).Info("checkout committed")

	return &committed, nil
}
