package view

import (
	"github.com/shopspring/decimal"

	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/event"
)

// BasketState is the render state of the basket surface.
type BasketState struct {
	Items Opt[[]*dom.Element]
	Total Opt[decimal.Decimal]
}

// Basket lists the cart lines, the total and the order button.
type Basket struct {
	root   *dom.Element
	list   *dom.Element
	price  *dom.Element
	button *dom.Element
	f      *Formatter
}

// NewBasket binds the basket surface cloned from the basket template.
func NewBasket(bus *event.Bus, root *dom.Element, f *Formatter) (*Basket, error) {
	list, err := root.Ensure(".basket__list")
	if err != nil {
		return nil, err
	}
	price, err := root.Ensure(".basket__price")
	if err != nil {
		return nil, err
	}
	button, err := root.Ensure(".basket__button")
	if err != nil {
		return nil, err
	}
	if f == nil {
		f = DefaultFormatter()
	}
	button.Listen(dom.EventClick, func(*dom.Event) {
		bus.Publish(event.NewSignal(event.BasketOrder))
	})
	return &Basket{root: root, list: list, price: price, button: button, f: f}, nil
}

// Root returns the basket element.
func (b *Basket) Root() *dom.Element { return b.root }

// OrderButton returns the button starting checkout.
func (b *Basket) OrderButton() *dom.Element { return b.button }

// Lines returns the rendered basket lines.
func (b *Basket) Lines() []*dom.Element { return b.list.Children() }

// Total returns the displayed total text.
func (b *Basket) Total() string { return b.price.Text() }

// Render applies s. Setting Items also disables the order button when the
// basket is empty.
func (b *Basket) Render(s BasketState) *dom.Element {
	s.Items.apply(func(items []*dom.Element) {
		replaceReleasing(b.list, items)
		b.button.SetDisabled(len(items) == 0)
	})
	s.Total.apply(func(d decimal.Decimal) { b.price.SetText(b.f.Amount(d)) })
	return b.root
}

var _ View[BasketState] = (*Basket)(nil)
