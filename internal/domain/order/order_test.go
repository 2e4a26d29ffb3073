package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		seq      int
		year     int
		expected string
	}{
		{"first order", 1, 2026, "ZRX-2026-0001"},
		{"padded sequence", 42, 2026, "ZRX-2026-0042"},
		{"four digit sequence", 9999, 2027, "ZRX-2027-9999"},
		{"sequence beyond padding", 12345, 2026, "ZRX-2026-12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := time.Date(tt.year, time.March, 14, 12, 0, 0, 0, time.UTC)
			assert.Equal(t, tt.expected, FormatNumber(tt.seq, at))
		})
	}
}

func TestItemSubtotal(t *testing.T) {
	item := Item{ProductID: "p1", Title: "Botella", UnitPrice: 450, Quantity: 2}

	assert.Equal(t, 900, item.Subtotal())
}
