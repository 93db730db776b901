// Package notify is a small synchronous pub-sub bus.  The lock manager
// publishes lifecycle events on it and consumers (the AMQP bridge, UI
// push, tests) subscribe without the lock manager knowing who listens.
package notify

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// Event types published by the scheduling core.
const (
	EventPartitionLocked   = "partition.locked"
	EventPartitionUnlocked = "partition.unlocked"
	EventSchedulerReady    = "scheduler.ready"
)

// Event carries what happened to which partition.  SubdivisionID is
// empty for session-level events such as scheduler.ready.
type Event struct {
	Type          string    `json:"type"`
	Date          string    `json:"date"`
	SubdivisionID string    `json:"subdivision_id,omitempty"`
	ActorID       uint64    `json:"actor_id"`
	At            time.Time `json:"at"`
}

// Handler is a function that handles an event.  Handlers run on the
// publisher's goroutine; long work should be handed off.
type Handler func(Event)

type subscription struct {
	id      string
	handler Handler
}

// Bus is a synchronous in-process event bus.  Publishing calls specific
// subscribers first, then wildcard subscribers, in registration order.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]subscription // event type -> subscriptions, "*" for all
	nextID atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers a handler for one event type and returns an ID for
// Unsubscribe.
func (b *Bus) Subscribe(eventType string, h Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := fmt.Sprintf("sub-%d", b.nextID.Add(1))
	b.subs[eventType] = append(b.subs[eventType], subscription{id: id, handler: h})
	return id
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(h Handler) string {
	return b.Subscribe("*", h)
}

// Unsubscribe removes a subscription by ID.  Returns false when the ID
// is unknown.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for eventType, subs := range b.subs {
		for i, s := range subs {
			if s.id == id {
				b.subs[eventType] = append(subs[:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Publish dispatches the event to matching handlers.  The subscriber
// list is copied under the read lock so handlers may subscribe or
// unsubscribe while a publish is in flight.  A panicking handler is
// recovered and logged; delivery to the remaining handlers continues.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	specific := make([]subscription, len(b.subs[ev.Type]))
	copy(specific, b.subs[ev.Type])
	wildcard := make([]subscription, len(b.subs["*"]))
	copy(wildcard, b.subs["*"])
	b.mu.RUnlock()

	for _, s := range specific {
		b.safeCall(s.handler, ev)
	}
	for _, s := range wildcard {
		b.safeCall(s.handler, ev)
	}
}

func (b *Bus) safeCall(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notify: handler panic on %s: %v\n%s", ev.Type, r, debug.Stack())
		}
	}()
	h(ev)
}
