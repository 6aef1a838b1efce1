// Package event provides the storefront's publish/subscribe bus.
//
// Models, views and the presenter never hold references to each other's
// internals: views publish UI events ("card:select", "order:next"), models
// publish state-change events ("cart:items:changed"), and the presenter
// subscribes to both and translates between them.
//
// # Main Types
//
//   - [Event]: interface implemented by every event (EventType, Timestamp)
//   - [Bus]: synchronous, re-entrant dispatcher
//   - [Handler]: func(Event)
//
// # Dispatch Semantics
//
// [Bus.Publish] calls, on the publishing goroutine and in registration
// order, every handler whose subscription matches the event name: exact
// names via [Bus.Subscribe], regular expressions via
// [Bus.SubscribePattern], everything via [Bus.SubscribeAll]. The set of
// handlers is captured when Publish starts, so a handler may publish,
// subscribe or unsubscribe without deadlocking; nested events are
// delivered before the outer Publish returns. A panicking handler is
// recovered and logged and the remaining handlers still run.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	id := bus.Subscribe(event.CardAdd, func(e event.Event) {
//	    add := e.(event.ProductEvent)
//	    cart.AddItem(...add.ID...)
//	})
//
//	bus.SubscribePattern(regexp.MustCompile(`^order:`), trace)
//
//	bus.Publish(event.NewCardAdd("c101ab44"))
//	bus.Unsubscribe(id)
//
// # Event Names
//
// Event names follow "surface:action" ("basket:open") or
// "surface:field:change" for form input. Model events are namespaced by
// model ("catalog:items:changed", "cart:items:changed") because all models
// share one bus.
package event
