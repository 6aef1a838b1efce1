package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/weblarek/larek/internal/shop"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns the event name (e.g., "card:select").
	EventType() string

	// Timestamp returns when the event was created.
	Timestamp() time.Time
}

// UI event names, published by views.
const (
	CardSelect          = "card:select"
	CardAdd             = "card:add"
	CardRemove          = "card:remove"
	BasketOpen          = "basket:open"
	BasketOrder         = "basket:order"
	OrderPaymentChange  = "order:payment:change"
	OrderAddressChange  = "order:address:change"
	OrderNext           = "order:next"
	ContactsEmailChange = "contacts:email:change"
	ContactsPhoneChange = "contacts:phone:change"
	ContactsSubmit      = "contacts:submit"
	ModalClose          = "modal:close"
	SuccessClose        = "success:close"
)

// Model event names, published by models after every mutation.
const (
	CatalogItemsChanged   = "catalog:items:changed"
	CatalogPreviewChanged = "catalog:preview:changed"
	CartItemsChanged      = "cart:items:changed"
	BuyerDataChanged      = "buyer:data:changed"
)

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// UI Events
// -----------------------------------------------------------------------------

// Signal is an event without a payload ("basket:open", "order:next").
type Signal struct {
	baseEvent
}

// NewSignal creates a payload-less event.
func NewSignal(eventType string) Signal {
	return Signal{baseEvent: newBaseEvent(eventType)}
}

// ProductEvent carries the ID of the product a card acted on.
type ProductEvent struct {
	baseEvent
	ID string
}

// NewCardSelect creates a "card:select" event.
func NewCardSelect(id string) ProductEvent {
	return ProductEvent{baseEvent: newBaseEvent(CardSelect), ID: id}
}

// NewCardAdd creates a "card:add" event.
func NewCardAdd(id string) ProductEvent {
	return ProductEvent{baseEvent: newBaseEvent(CardAdd), ID: id}
}

// NewCardRemove creates a "card:remove" event.
func NewCardRemove(id string) ProductEvent {
	return ProductEvent{baseEvent: newBaseEvent(CardRemove), ID: id}
}

// PaymentChanged is published when the shopper picks a payment method.
type PaymentChanged struct {
	baseEvent
	Payment shop.Payment
}

// NewPaymentChanged creates an "order:payment:change" event.
func NewPaymentChanged(p shop.Payment) PaymentChanged {
	return PaymentChanged{baseEvent: newBaseEvent(OrderPaymentChange), Payment: p}
}

// FieldChanged is published on every edit of a text input of a checkout form.
type FieldChanged struct {
	baseEvent
	Field shop.Field
	Value string
}

// NewFieldChanged creates the change event for a text field. Field must be
// address, email or phone.
func NewFieldChanged(field shop.Field, value string) FieldChanged {
	name := ""
	switch field {
	case shop.FieldAddress:
		name = OrderAddressChange
	case shop.FieldEmail:
		name = ContactsEmailChange
	case shop.FieldPhone:
		name = ContactsPhoneChange
	}
	return FieldChanged{baseEvent: newBaseEvent(name), Field: field, Value: value}
}

// -----------------------------------------------------------------------------
// Model Events
// -----------------------------------------------------------------------------

// CatalogChanged carries the catalog snapshot after SetItems.
type CatalogChanged struct {
	baseEvent
	Items []shop.Product
}

// NewCatalogChanged creates a "catalog:items:changed" event.
func NewCatalogChanged(items []shop.Product) CatalogChanged {
	return CatalogChanged{baseEvent: newBaseEvent(CatalogItemsChanged), Items: items}
}

// PreviewChanged carries the product under inspection, nil when cleared.
type PreviewChanged struct {
	baseEvent
	Preview *shop.Product
}

// NewPreviewChanged creates a "catalog:preview:changed" event.
func NewPreviewChanged(p *shop.Product) PreviewChanged {
	return PreviewChanged{baseEvent: newBaseEvent(CatalogPreviewChanged), Preview: p}
}

// CartChanged carries the cart contents and derived values after a mutation.
type CartChanged struct {
	baseEvent
	Items []shop.Product
	Total decimal.Decimal
	Count int
}

// NewCartChanged creates a "cart:items:changed" event.
func NewCartChanged(items []shop.Product, total decimal.Decimal) CartChanged {
	return CartChanged{
		baseEvent: newBaseEvent(CartItemsChanged),
		Items:     items,
		Total:     total,
		Count:     len(items),
	}
}

// BuyerChanged carries the buyer record after a mutation.
type BuyerChanged struct {
	baseEvent
	Data shop.BuyerData
}

// NewBuyerChanged creates a "buyer:data:changed" event.
func NewBuyerChanged(data shop.BuyerData) BuyerChanged {
	return BuyerChanged{baseEvent: newBaseEvent(BuyerDataChanged), Data: data}
}
