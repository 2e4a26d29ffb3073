// Package order defines committed purchase orders and the order number
// contract.
package order

import (
	"fmt"
	"time"
)

// Currency is the only currency the store trades in.
const Currency = "DOP"

// Item is one validated line of an order. UnitPrice is the product's live
// price at commit time, in whole DOP.
type Item struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	UnitPrice int    `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Subtotal returns the line total.
func (i Item) Subtotal() int {
	return i.UnitPrice * i.Quantity
}

// Order is a committed purchase. Orders are never deleted and their numbers
// are never reused.
type Order struct {
	ID        string    `json:"id"`
	Number    string    `json:"order_number"`
	UserEmail string    `json:"user_email"`
	Items     []Item    `json:"items"`
	Total     int       `json:"total"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// FormatNumber renders the external order number contract:
// ZRX-<4-digit-year>-<sequence zero-padded to 4 digits>.
func FormatNumber(seq int, at time.Time) string {
	return fmt.Sprintf("ZRX-%04d-%04d", at.Year(), seq)
}
