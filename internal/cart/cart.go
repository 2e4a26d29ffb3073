// Package cart keeps the per-identity shopping carts. A cart is a secondary
// persisted mapping in the key-value store, one record per identity, kept
// outside the snapshot record so browsing never rewrites the database.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/example/zyrix-club/internal/domain/product"
	"github.com/example/zyrix-club/internal/kvstore"
	"github.com/example/zyrix-club/internal/repository"
)

// GuestIdentity keys the cart of a visitor who has not signed in.
const GuestIdentity = "guest"

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrStockExceeded   = errors.New("requested quantity exceeds current stock")
)

// Item is one cart line. UnitPrice and Title are captured at add time for
// display only; checkout re-reads the live product.
type Item struct {
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	Title     string `json:"title"`
}

// Cart maps product id to its line.
type Cart map[string]Item

// Total returns the display total from the captured prices.
func (c Cart) Total() int {
	total := 0
	for _, item := range c {
		total += item.UnitPrice * item.Quantity
	}
	return total
}

// ProductIDs returns the cart's product ids in stable order.
func (c Cart) ProductIDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IdentityFor maps an optional signed-in email to a cart identity.
func IdentityFor(email string) string {
	if email == "" {
		return GuestIdentity
	}
	return email
}

// Service reads and writes cart records. Mutations cap quantities at the
// product's stock at mutation time; drift after that is tolerated until
// checkout validates again.
type Service struct {
	mu       sync.Mutex
	kv       kvstore.Store
	products *repository.Products
}

func New(kv kvstore.Store, products *repository.Products) *Service {
	return &Service{kv: kv, products: products}
}

func cartKey(identity string) []byte {
	return []byte(fmt.Sprintf("cart:%s", identity))
}

// Get returns the cart for identity. Absent or unreadable records yield an
// empty cart.
func (s *Service) Get(identity string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(identity)
}

func (s *Service) getLocked(identity string) (Cart, error) {
	raw, ok, err := s.kv.Get(cartKey(identity))
	if err != nil {
		return nil, err
	}
	c := Cart{}
	if ok {
		if err := json.Unmarshal(raw, &c); err != nil {
			return Cart{}, nil
		}
	}
	return c, nil
}

func (s *Service) putLocked(identity string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.kv.Put(cartKey(identity), raw)
}

// Add puts qty more units of the product into the cart, capturing the
// current price and title on the first add.
func (s *Service) Add(identity, productID string, qty int) (Cart, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.Find(productID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.getLocked(identity)
	if err != nil {
		return nil, err
	}

	line, exists := c[productID]
	if !exists {
		line = Item{UnitPrice: p.Price, Title: p.Title}
	}
	if line.Quantity+qty > p.Stock {
		return nil, fmt.Errorf("%w: %s has %d left", ErrStockExceeded, p.Title, p.Stock)
	}
	line.Quantity += qty
	c[productID] = line

	if err := s.putLocked(identity, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetQuantity replaces the quantity of an existing line. Zero or negative
// removes the line.
func (s *Service) SetQuantity(identity, productID string, qty int) (Cart, error) {
	if qty <= 0 {
		return s.Remove(identity, productID)
	}

	p, err := s.products.Find(productID)
	if err != nil {
		return nil, err
	}
	if qty > p.Stock {
		return nil, fmt.Errorf("%w: %s has %d left", ErrStockExceeded, p.Title, p.Stock)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.getLocked(identity)
	if err != nil {
		return nil, err
	}
	line, exists := c[productID]
	if !exists {
		line = Item{UnitPrice: p.Price, Title: p.Title}
	}
	line.Quantity = qty
	c[productID] = line

	if err := s.putLocked(identity, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove drops a line from the cart. Removing an absent line is a no-op;
// the cart record is rewritten either way.
func (s *Service) Remove(identity, productID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.getLocked(identity)
	if err != nil {
		return nil, err
	}
	delete(c, productID)
	if err := s.putLocked(identity, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the cart for identity.
func (s *Service) Clear(identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(cartKey(identity))
}

// Merge folds the from cart into the to cart, capping merged quantities at
// current stock, then clears from. Used to carry a guest cart across login.
func (s *Service) Merge(from, to string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.getLocked(from)
	if err != nil {
		return nil, err
	}
	dst, err := s.getLocked(to)
	if err != nil {
		return nil, err
	}

	for id, line := range src {
		p, err := s.products.Find(id)
		if errors.Is(err, product.ErrNotFound) {
			continue // dropped from the catalog since it was added
		}
		if err != nil {
			return nil, err
		}
		merged, exists := dst[id]
		if !exists {
			merged = Item{UnitPrice: line.UnitPrice, Title: line.Title}
		}
		merged.Quantity += line.Quantity
		if merged.Quantity > p.Stock {
			merged.Quantity = p.Stock
		}
		dst[id] = merged
	}

	if err := s.putLocked(to, dst); err != nil {
		return nil, err
	}
	if err := s.kv.Delete(cartKey(from)); err != nil {
		return nil, err
	}
	return dst, nil
}
