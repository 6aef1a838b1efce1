package model

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/weblarek/larek/internal/event"
	"github.com/weblarek/larek/internal/shop"
)

// recorder collects every event published on a bus.
type recorder struct {
	events []event.Event
}

func newRecorder(t *testing.T) (*event.Bus, *recorder) {
	t.Helper()
	bus := event.NewBus()
	r := &recorder{}
	bus.SubscribeAll(func(e event.Event) {
		r.events = append(r.events, e)
	})
	return bus, r
}

func (r *recorder) reset() { r.events = nil }

func (r *recorder) expectOne(t *testing.T, eventType string) event.Event {
	t.Helper()
	if len(r.events) != 1 {
		t.Fatalf("expected exactly 1 event, got %d", len(r.events))
	}
	if got := r.events[0].EventType(); got != eventType {
		t.Fatalf("expected %q, got %q", eventType, got)
	}
	e := r.events[0]
	r.reset()
	return e
}

func priced(id string, price int64) shop.Product {
	return shop.Product{
		ID:    id,
		Title: "Product " + id,
		Price: decimal.NewNullDecimal(decimal.NewFromInt(price)),
	}
}

func priceless(id string) shop.Product {
	return shop.Product{ID: id, Title: "Product " + id}
}
