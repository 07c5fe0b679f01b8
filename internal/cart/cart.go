// Package cart holds the items a storefront session intends to buy.
package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/models"
)

// Cart is a set of items keyed by id. The zero value is an empty cart.
type Cart struct {
	Items []models.CartItem `json:"items"`
}

// Add appends item unless an item with the same id is already present.
// It reports whether the cart changed.
func (c *Cart) Add(item models.CartItem) (bool, error) {
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		return false, apperr.Validation("item id is required")
	}
	if item.Price.IsNegative() {
		return false, apperr.Validation("item price must not be negative")
	}
	if c.indexOf(item.ID) >= 0 {
		return false, nil
	}
	c.Items = append(c.Items, item)
	return true, nil
}

// Remove drops the item with id. Removing an absent id is a no-op.
func (c *Cart) Remove(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) Count() int {
	return len(c.Items)
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Price)
	}
	return total
}

func (c *Cart) indexOf(id string) int {
	for i, it := range c.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
