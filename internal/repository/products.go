package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/zyrix-club/internal/domain/product"
	"github.com/example/zyrix-club/internal/store"
)

// Products is the catalog repository.
type Products struct {
	store *store.Store
}

func NewProducts(s *store.Store) *Products {
	return &Products{store: s}
}

// List returns the catalog in snapshot order.
func (r *Products) List() ([]product.Product, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return snap.Products, nil
}

// Find returns the product with the given id, or product.ErrNotFound.
func (r *Products) Find(id string) (*product.Product, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	p := snap.FindProduct(id)
	if p == nil {
		return nil, product.ErrNotFound
	}
	return p, nil
}

// Create validates p, assigns a generated id when absent and appends it.
func (r *Products) Create(p product.Product) (*product.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()

	err := r.store.Update(func(snap *store.Snapshot) error {
		snap.Products = append(snap.Products, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductUpdate is a validated patch. Nil fields are left untouched. Stock
// set here is the administrative override; checkout is the only other stock
// writer.
type ProductUpdate struct {
	Title    *string
	Price    *int
	Stock    *int
	Category *string
	Image    *string
	Featured *bool
}

// Update applies a validated patch to the product with the given id and
// returns the stored result.
func (r *Products) Update(id string, patch ProductUpdate) (*product.Product, error) {
	if patch.Title != nil && *patch.Title == "" {
		return nil, product.ErrTitleRequired
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, product.ErrInvalidPrice
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, product.ErrInvalidStock
	}

	var updated product.Product
	err := r.store.Update(func(snap *store.Snapshot) error {
		p := snap.FindProduct(id)
		if p == nil {
			return product.ErrNotFound
		}
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Stock != nil {
			p.Stock = *patch.Stock
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Image != nil {
			p.Image = *patch.Image
		}
		if patch.Featured != nil {
			p.Featured = *patch.Featured
		}
		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the product with the given id. Missing products fail with
// product.ErrNotFound.
func (r *Products) Delete(id string) error {
	return r.store.Update(func(snap *store.Snapshot) error {
		for i := range snap.Products {
			if snap.Products[i].ID == id {
				snap.Products = append(snap.Products[:i], snap.Products[i+1:]...)
				return nil
			}
		}
		return product.ErrNotFound
	})
}
