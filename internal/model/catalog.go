package model

import (
	"slices"

	"github.com/weblarek/larek/internal/errors"
	"github.com/weblarek/larek/internal/event"
	"github.com/weblarek/larek/internal/shop"
)

// Catalog is the ordered product list returned by the backend plus at most
// one product selected for detailed inspection.
type Catalog struct {
	bus     *event.Bus
	items   []shop.Product
	preview *shop.Product
}

// NewCatalog creates an empty catalog publishing on bus.
func NewCatalog(bus *event.Bus) *Catalog {
	return &Catalog{bus: bus}
}

// SetItems replaces the catalog. A selected preview is re-resolved by ID
// against the new items and cleared when its product is gone.
func (c *Catalog) SetItems(items []shop.Product) {
	c.items = slices.Clone(items)

	if c.preview != nil {
		if p, ok := c.find(c.preview.ID); ok {
			c.preview = &p
		} else {
			c.preview = nil
		}
	}

	c.bus.Publish(event.NewCatalogChanged(c.Items()))
}

// Items returns a copy of the products in server order.
func (c *Catalog) Items() []shop.Product {
	return slices.Clone(c.items)
}

// ItemByID looks up a product.
func (c *Catalog) ItemByID(id string) (shop.Product, bool) {
	return c.find(id)
}

// SetPreview selects the product with the given ID for inspection.
// An unknown ID leaves the preview unchanged, publishes nothing and returns
// a *errors.NotFoundError.
func (c *Catalog) SetPreview(id string) error {
	p, ok := c.find(id)
	if !ok {
		return errors.NewNotFoundError("product", id).WithCause(errors.ErrProductNotFound)
	}
	c.preview = &p
	c.bus.Publish(event.NewPreviewChanged(c.Preview()))
	return nil
}

// ClearPreview deselects the previewed product.
func (c *Catalog) ClearPreview() {
	c.preview = nil
	c.bus.Publish(event.NewPreviewChanged(nil))
}

// Preview returns a copy of the previewed product, or nil.
func (c *Catalog) Preview() *shop.Product {
	if c.preview == nil {
		return nil
	}
	p := *c.preview
	return &p
}

func (c *Catalog) find(id string) (shop.Product, bool) {
	i := slices.IndexFunc(c.items, func(p shop.Product) bool { return p.ID == id })
	if i < 0 {
		return shop.Product{}, false
	}
	return c.items[i], true
}
