// Package cart holds the storefront cart: ordered line items plus the pure
// mutation operations over them. Operations take a Cart value and return a
// new one; callers own persistence and any user-facing confirmation.
package cart

import "strings"

// LineItem is one product-and-quantity entry. Identity is the product id
// plus the selected size, so the same cap in two sizes is two entries.
type LineItem struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	UnitPrice     int64  `json:"unit_price"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selected_size,omitempty"`
	SelectedColor string `json:"selected_color,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
}

// Key returns the item's identity within the cart.
func (li LineItem) Key() string {
	return ItemKey(li.ProductID, li.SelectedSize)
}

// ItemKey builds the composite identity for a product and optional size.
func ItemKey(productID, size string) string {
	productID = strings.TrimSpace(productID)
	size = strings.TrimSpace(size)
	if size == "" {
		return productID
	}
	return productID + "#" + size
}

// Cart is an ordered sequence of line items, insertion order preserved.
type Cart []LineItem

// Add merges the item into the cart: an entry with the same identity has its
// quantity incremented, otherwise the item is appended. A non-positive
// quantity is treated as 1.
func Add(c Cart, item LineItem, qty int) Cart {
	if qty < 1 {
		qty = 1
	}

	next := clone(c)
	key := item.Key()
	for i := range next {
		if next[i].Key() == key {
			next[i].Quantity += qty
			return next
		}
	}

	item.Quantity = qty
	return append(next, item)
}

// Remove drops the line item with the given identity. Unknown keys are a no-op.
func Remove(c Cart, key string) Cart {
	next := make(Cart, 0, len(c))
	for _, item := range c {
		if item.Key() == key {
			continue
		}
		next = append(next, item)
	}
	return next
}

// Increase bumps the matching item's quantity by one. Unknown keys are a no-op.
func Increase(c Cart, key string) Cart {
	next := clone(c)
	for i := range next {
		if next[i].Key() == key {
			next[i].Quantity++
			break
		}
	}
	return next
}

// Decrease lowers the matching item's quantity by one; an item reaching zero
// is removed entirely, never stored at zero.
func Decrease(c Cart, key string) Cart {
	next := clone(c)
	for i := range next {
		if next[i].Key() == key {
			next[i].Quantity--
			if next[i].Quantity <= 0 {
				return append(next[:i], next[i+1:]...)
			}
			break
		}
	}
	return next
}

// Clear returns an empty cart.
func Clear(Cart) Cart {
	return Cart{}
}

// Find returns the line item with the given identity, if present.
func Find(c Cart, key string) (LineItem, bool) {
	for _, item := range c {
		if item.Key() == key {
			return item, true
		}
	}
	return LineItem{}, false
}

// TotalQuantity sums the quantities across all line items.
func TotalQuantity(c Cart) int {
	var total int
	for _, item := range c {
		total += item.Quantity
	}
	return total
}

func clone(c Cart) Cart {
	next := make(Cart, len(c))
	copy(next, c)
	return next
}
