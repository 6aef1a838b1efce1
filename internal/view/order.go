package view

import (
	"github.com/weblarek/larek/internal/dom"
	"github.com/weblarek/larek/internal/event"
	"github.com/weblarek/larek/internal/shop"
)

const activePaymentClass = "button_alt-active"

// OrderState is the render state of the first checkout step.
type OrderState struct {
	Payment Opt[shop.Payment]
	Address Opt[string]
	Errors  Opt[shop.ValidationErrors]
	Valid   Opt[bool]
}

// Order is the payment method and delivery address form.
type Order struct {
	*Form
	online  *dom.Element
	offline *dom.Element
	address *dom.Element
}

// NewOrder binds the order form cloned from the order template.
func NewOrder(bus *event.Bus, root *dom.Element) (*Order, error) {
	form, err := NewForm(bus, root, event.OrderNext, shop.FieldPayment, shop.FieldAddress)
	if err != nil {
		return nil, err
	}
	online, err := root.Ensure(`button[name="card"]`)
	if err != nil {
		return nil, err
	}
	offline, err := root.Ensure(`button[name="cash"]`)
	if err != nil {
		return nil, err
	}
	address, err := root.Ensure(`input[name="address"]`)
	if err != nil {
		return nil, err
	}

	online.Listen(dom.EventClick, func(*dom.Event) {
		bus.Publish(event.NewPaymentChanged(shop.PaymentOnline))
	})
	offline.Listen(dom.EventClick, func(*dom.Event) {
		bus.Publish(event.NewPaymentChanged(shop.PaymentOffline))
	})
	address.Listen(dom.EventInput, func(e *dom.Event) {
		bus.Publish(event.NewFieldChanged(shop.FieldAddress, e.Target.Value()))
	})

	return &Order{Form: form, online: online, offline: offline, address: address}, nil
}

// PaymentButton returns the button selecting p.
func (o *Order) PaymentButton(p shop.Payment) *dom.Element {
	if p == shop.PaymentOffline {
		return o.offline
	}
	return o.online
}

// AddressInput returns the address field.
func (o *Order) AddressInput() *dom.Element { return o.address }

// Render applies s.
func (o *Order) Render(s OrderState) *dom.Element {
	s.Payment.apply(func(p shop.Payment) {
		o.online.ToggleClass(activePaymentClass, p == shop.PaymentOnline)
		o.offline.ToggleClass(activePaymentClass, p == shop.PaymentOffline)
	})
	s.Address.apply(o.address.SetValue)
	s.Errors.apply(o.SetErrors)
	s.Valid.apply(o.SetValid)
	return o.root
}

var _ View[OrderState] = (*Order)(nil)
