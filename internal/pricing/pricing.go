// Package pricing derives order totals from a cart. Totals are recomputed on
// demand and never persisted.
package pricing

import (
	"github.com/streetcaps511-a11y/gmcaps-backend/internal/cart"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/money"
)

// Totals is the derived money breakdown for a cart.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// ComputeTotals sums the line items and applies the fixed tax rate. Only the
// tax figure is rounded; subtotal and total stay exact. An empty cart yields
// all-zero totals.
func ComputeTotals(c cart.Cart) Totals {
	var subtotal int64
	for _, item := range c {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}

	tax := money.Tax(subtotal)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
