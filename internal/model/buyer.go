package model

import (
	"strings"

	"github.com/weblarek/larek/internal/event"
	"github.com/weblarek/larek/internal/shop"
)

// Validation messages.
const (
	MsgPaymentRequired = "Select a payment method"
	MsgEmailRequired   = "Enter an email"
	MsgPhoneRequired   = "Enter a phone number"
	MsgAddressRequired = "Enter a delivery address"
)

// Buyer is the checkout record shared by the order and contacts forms.
type Buyer struct {
	bus  *event.Bus
	data shop.BuyerData
}

// NewBuyer creates a blank buyer record publishing on bus.
func NewBuyer(bus *event.Bus) *Buyer {
	return &Buyer{bus: bus}
}

// SetPayment sets the payment method. Values outside the known set clear it.
func (b *Buyer) SetPayment(p shop.Payment) {
	b.data.Payment = shop.ParsePayment(string(p))
	b.publish()
}

// SetEmail stores the email verbatim.
func (b *Buyer) SetEmail(email string) {
	b.data.Email = email
	b.publish()
}

// SetPhone stores the phone verbatim.
func (b *Buyer) SetPhone(phone string) {
	b.data.Phone = phone
	b.publish()
}

// SetAddress stores the delivery address verbatim.
func (b *Buyer) SetAddress(address string) {
	b.data.Address = address
	b.publish()
}

// SetData replaces the whole record in one mutation.
func (b *Buyer) SetData(data shop.BuyerData) {
	data.Payment = shop.ParsePayment(string(data.Payment))
	b.data = data
	b.publish()
}

// Clear resets every field to blank.
func (b *Buyer) Clear() {
	b.data = shop.BuyerData{}
	b.publish()
}

// Data returns a snapshot of the record.
func (b *Buyer) Data() shop.BuyerData {
	return b.data
}

// Validate returns a message for every field that is unset or blank.
// Only presence is checked.
func (b *Buyer) Validate() shop.ValidationErrors {
	errs := make(shop.ValidationErrors)
	if !b.data.Payment.Valid() {
		errs[shop.FieldPayment] = MsgPaymentRequired
	}
	if blank(b.data.Email) {
		errs[shop.FieldEmail] = MsgEmailRequired
	}
	if blank(b.data.Phone) {
		errs[shop.FieldPhone] = MsgPhoneRequired
	}
	if blank(b.data.Address) {
		errs[shop.FieldAddress] = MsgAddressRequired
	}
	return errs
}

// ValidateFields is Validate restricted to fields.
func (b *Buyer) ValidateFields(fields ...shop.Field) shop.ValidationErrors {
	return b.Validate().Only(fields...)
}

func (b *Buyer) publish() {
	b.bus.Publish(event.NewBuyerChanged(b.data))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
