package event

import (
	"sync"

	"github.com/hupe1980/gauss/core"
)

// Handler is a callback invoked synchronously for each matching event.
type Handler func(Event)

type subscription struct {
	id      string
	handler Handler
}

// Bus is a synchronous publish/subscribe channel for lifecycle events.
//
// The zero value is not usable; construct with NewBus. All methods are safe
// for concurrent use. Publish snapshots the matching handlers before
// invoking them, so a handler may subscribe or unsubscribe (including
// itself) without deadlocking; a handler removed concurrently with an
// in-flight Publish may still observe that one event, but is never invoked
// twice for it.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]subscription
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: map[string][]subscription{}}
}

// Subscribe registers a handler for the given dispatch name (or Wildcard
// for all events) and returns an opaque subscription id for later removal.
func (b *Bus) Subscribe(dispatchName string, handler Handler) string {
	id := core.NewID()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[dispatchName] = append(b.handlers[dispatchName], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes the handler registered under the given subscription
// id. It returns true iff a handler was actually removed; other handlers
// are left untouched.
func (b *Bus) Unsubscribe(subscriptionID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for name, subs := range b.handlers {
		for i, sub := range subs {
			if sub.id == subscriptionID {
				b.handlers[name] = append(subs[:i:i], subs[i+1:]...)
				if len(b.handlers[name]) == 0 {
					delete(b.handlers, name)
				}
				return true
			}
		}
	}
	return false
}

// Publish delivers the event to every handler registered under its dispatch
// name plus every wildcard handler, each exactly once. It returns after all
// handlers have run.
func (b *Bus) Publish(ev Event) {
	name := ev.DispatchName()

	b.mu.RLock()
	matched := make([]subscription, 0, len(b.handlers[name])+len(b.handlers[Wildcard]))
	matched = append(matched, b.handlers[name]...)
	if name != Wildcard {
		matched = append(matched, b.handlers[Wildcard]...)
	}
	b.mu.RUnlock()

	for _, sub := range matched {
		sub.handler(ev)
	}
}

// SubscriptionCount returns the total number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := 0
	for _, subs := range b.handlers {
		total += len(subs)
	}
	return total
}
