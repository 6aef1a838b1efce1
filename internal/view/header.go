package view

import (
	"strconv"

	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/event"
)

// HeaderState is the render state of the page header.
type HeaderState struct {
	Counter Opt[int]
}

// Header shows the cart counter and opens the basket.
type Header struct {
	root    *dom.Element
	button  *dom.Element
	counter *dom.Element
}

// NewHeader binds the page header.
func NewHeader(bus *event.Bus, root *dom.Element) (*Header, error) {
	button, err := root.Ensure(".header__basket")
	if err != nil {
		return nil, err
	}
	counter, err := root.Ensure(".header__basket-counter")
	if err != nil {
		return nil, err
	}
	button.Listen(dom.EventClick, func(*dom.Event) {
		bus.Publish(event.NewSignal(event.BasketOpen))
	})
	return &Header{root: root, button: button, counter: counter}, nil
}

// Root returns the header element.
func (h *Header) Root() *dom.Element { return h.root }

// BasketButton returns the button opening the basket.
func (h *Header) BasketButton() *dom.Element { return h.button }

// Counter returns the displayed cart count text.
func (h *Header) Counter() string { return h.counter.Text() }

// Render applies s.
func (h *Header) Render(s HeaderState) *dom.Element {
	s.Counter.apply(func(n int) { h.counter.SetText(strconv.Itoa(n)) })
	return h.root
}

var _ View[HeaderState] = (*Header)(nil)
