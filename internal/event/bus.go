package event

import (
	"regexp"
	"runtime/debug"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/weblarek/larek/internal/logging"
)

// Handler is a function that handles an event.
type Handler func(Event)

// wildcard is the event type that matches every event.
const wildcard = "*"

// subscription represents a registered event handler.
type subscription struct {
	id        string
	eventType string
	pattern   *regexp.Regexp
	handler   Handler
}

func (s subscription) matches(eventType string) bool {
	if s.pattern != nil {
		return s.pattern.MatchString(eventType)
	}
	return s.eventType == wildcard || s.eventType == eventType
}

// Bus is a synchronous pub-sub event bus.
// It is safe for concurrent use, although the storefront publishes from a
// single goroutine.
type Bus struct {
	mu            sync.RWMutex
	subscriptions []subscription // registration order
	nextID        atomic.Uint64
	logger        *logging.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger makes the bus log every published event at DEBUG level and
// recovered handler panics at ERROR level.
func WithLogger(l *logging.Logger) Option {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBus creates a new event bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{logger: logging.NopLogger()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for an exact event type.
// Returns a subscription ID that can be used to unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	return b.add(subscription{eventType: eventType, handler: handler})
}

// SubscribePattern registers a handler for every event type matching re.
func (b *Bus) SubscribePattern(re *regexp.Regexp, handler Handler) string {
	return b.add(subscription{eventType: re.String(), pattern: re, handler: handler})
}

// SubscribeAll registers a handler for all event types.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(wildcard, handler)
}

func (b *Bus) add(sub subscription) string {
	sub.id = "sub-" + strconv.FormatUint(b.nextID.Add(1), 10)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions = append(b.subscriptions, sub)
	return sub.id
}

// Unsubscribe removes a subscription by ID.
// Returns true if the subscription was found and removed; unknown IDs are
// ignored.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscriptions {
		if sub.id == id {
			b.subscriptions = slices.Delete(b.subscriptions, i, i+1)
			return true
		}
	}
	return false
}

// Publish dispatches an event to all matching handlers in registration
// order. Handlers registered while the event is being dispatched take effect
// from the next Publish; handlers removed during dispatch are skipped if they
// have not run yet.
func (b *Bus) Publish(event Event) {
	eventType := event.EventType()

	b.mu.RLock()
	var matched []subscription
	for _, sub := range b.subscriptions {
		if sub.matches(eventType) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	logger := b.logger.WithEvent(eventType)
	logger.Debug("publish", "handlers", len(matched))

	for _, sub := range matched {
		if !b.live(sub.id) {
			continue
		}
		b.safeCall(logger, sub.handler, event)
	}
}

func (b *Bus) live(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.ContainsFunc(b.subscriptions, func(s subscription) bool { return s.id == id })
}

// safeCall invokes a handler and recovers from any panics so one
// misbehaving handler cannot block delivery to the others.
func (b *Bus) safeCall(logger *logging.Logger, handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event handler panicked",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	handler(event)
}

// Clear removes all subscriptions.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions = nil
}

// SubscriptionCount returns the total number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptions)
}
