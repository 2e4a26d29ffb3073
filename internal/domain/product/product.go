// Package product defines catalog items.
package product

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrTitleRequired = errors.New("product title is required")
	ErrInvalidPrice  = errors.New("price must not be negative")
	ErrInvalidStock  = errors.New("stock must not be negative")
)

// Product is a catalog item. Price is in whole DOP. Stock only decreases
// through a committed checkout or an administrative update and is never
// negative.
type Product struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Price     int       `json:"price"`
	Stock     int       `json:"stock"`
	Category  string    `json:"category,omitempty"`
	Image     string    `json:"image,omitempty"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the creation fields of p.
func (p Product) Validate() error {
	if p.Title == "" {
		return ErrTitleRequired
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}
