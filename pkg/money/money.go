package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are whole currency units carried as int64. Only the tax figure is
// ever rounded; decimal keeps the multiplication exact before that happens.

// TaxRate is the fixed 19% rate applied at checkout.
var TaxRate = decimal.New(19, -2)

// Tax returns the tax owed on the subtotal, rounded half-up to the nearest
// whole unit. Subtotals are never negative in this system.
func Tax(subtotal int64) int64 {
	return decimal.NewFromInt(subtotal).Mul(TaxRate).Round(0).IntPart()
}

// Format renders an amount as a display price with dot thousand separators,
// e.g. 119000 -> "$ 119.000".
func Format(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := "$ " + strings.Join(groups, ".")
	if negative {
		out = "-" + out
	}
	return out
}
