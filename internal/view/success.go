package view

import (
	"github.com/shopspring/decimal"

	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/event"
)

// SuccessState is the render state of the order confirmation.
type SuccessState struct {
	Total Opt[decimal.Decimal]
}

// Success confirms a placed order.
type Success struct {
	root        *dom.Element
	description *dom.Element
	close       *dom.Element
	f           *Formatter
}

// NewSuccess binds the confirmation cloned from the success template.
func NewSuccess(bus *event.Bus, root *dom.Element, f *Formatter) (*Success, error) {
	description, err := root.Ensure(".order-success__description")
	if err != nil {
		return nil, err
	}
	closeButton, err := root.Ensure(".order-success__close")
	if err != nil {
		return nil, err
	}
	if f == nil {
		f = DefaultFormatter()
	}
	closeButton.Listen(dom.EventClick, func(*dom.Event) {
		bus.Publish(event.NewSignal(event.SuccessClose))
	})
	return &Success{root: root, description: description, close: closeButton, f: f}, nil
}

// Root returns the confirmation element.
func (s *Success) Root() *dom.Element { return s.root }

// CloseButton returns the button dismissing the confirmation.
func (s *Success) CloseButton() *dom.Element { return s.close }

// Description returns the displayed text.
func (s *Success) Description() string { return s.description.Text() }

// Render applies st.
func (s *Success) Render(st SuccessState) *dom.Element {
	st.Total.apply(func(d decimal.Decimal) { s.description.SetText(s.f.WrittenOff(d)) })
	return s.root
}

var _ View[SuccessState] = (*Success)(nil)
