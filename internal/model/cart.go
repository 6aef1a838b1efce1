package model

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/weblarek/larek/internal/event"
	"github.com/weblarek/larek/internal/shop"
)

// Action labels for a product's cart button.
const (
	LabelBuy         = "Buy"
	LabelRemove      = "Remove from basket"
	LabelUnavailable = "Unavailable"
)

// Cart is the ordered set of products the buyer intends to purchase.
// A product appears at most once.
type Cart struct {
	bus   *event.Bus
	items []shop.Product
}

// NewCart creates an empty cart publishing on bus.
func NewCart(bus *event.Bus) *Cart {
	return &Cart{bus: bus}
}

// AddItem appends p unless a product with the same ID is already in the
// cart. It reports whether the cart changed. The change event is published
// either way.
func (c *Cart) AddItem(p shop.Product) bool {
	added := false
	if !c.Contains(p.ID) {
		c.items = append(c.items, p)
		added = true
	}
	c.publish()
	return added
}

// RemoveItem removes the product with the given ID and reports whether it
// was present. The change event is published either way.
func (c *Cart) RemoveItem(id string) bool {
	n := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(p shop.Product) bool { return p.ID == id })
	removed := len(c.items) != n
	c.publish()
	return removed
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
	c.publish()
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []shop.Product {
	return slices.Clone(c.items)
}

// IDs returns the product IDs in insertion order.
func (c *Cart) IDs() []string {
	ids := make([]string, len(c.items))
	for i, p := range c.items {
		ids[i] = p.ID
	}
	return ids
}

// Total sums the prices of the cart contents. Products without a price
// count as zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.items {
		total = total.Add(p.PriceOrZero())
	}
	return total
}

// Count returns the number of products in the cart.
func (c *Cart) Count() int {
	return len(c.items)
}

// Contains reports whether a product with the given ID is in the cart.
func (c *Cart) Contains(id string) bool {
	return slices.ContainsFunc(c.items, func(p shop.Product) bool { return p.ID == id })
}

// IsPurchasable reports whether p may be added to the cart.
func (c *Cart) IsPurchasable(p shop.Product) bool {
	return p.ForSale()
}

// ActionLabel returns the caption of p's cart button in the preview.
func (c *Cart) ActionLabel(p shop.Product) string {
	switch {
	case c.Contains(p.ID):
		return LabelRemove
	case !c.IsPurchasable(p):
		return LabelUnavailable
	default:
		return LabelBuy
	}
}

func (c *Cart) publish() {
	c.bus.Publish(event.NewCartChanged(c.Items(), c.Total()))
}
