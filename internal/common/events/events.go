// Package events is a small in-process bus for cross-component notifications.
// Components get an explicit *Bus handle; there is no global instance.
package events

import (
	"sync"
	"time"
)

type Type string

const (
	ListUpdated         Type = "list.updated"
	ListCleared         Type = "list.cleared"
	ComparisonStarted   Type = "comparison.started"
	ComparisonCompleted Type = "comparison.completed"
	ComparisonFailed    Type = "comparison.failed"
)

// Event carries a typed payload to subscribers.
type Event struct {
	Type      Type
	Payload   interface{}
	Timestamp time.Time
}

type Handler func(Event)

type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[Type][]Handler{}}
}

// Subscribe registers a handler for one event type. Handlers run
// synchronously on the publishing goroutine, in registration order.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish delivers the event to every handler registered for its type.
func (b *Bus) Publish(t Type, payload interface{}) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[t]))
	copy(handlers, b.handlers[t])
	b.mu.RUnlock()

	evt := Event{Type: t, Payload: payload, Timestamp: time.Now().UTC()}
	for _, h := range handlers {
		h(evt)
	}
}
