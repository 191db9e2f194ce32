// Package event provides a small synchronous event dispatcher.
//
// A Bus is owned by one market session; services fire events on it and the
// logger and metrics listen:
//
//	bus := event.NewBus()
//	bus.Listen(event.SaleFinalized, func(e event.Event) { ... })
//	bus.Fire(event.New(event.SaleFinalized).With("total", total))
package event

import (
	"sync"
)

// Names of the events fired by the market services.
const (
	ProductRegistered = "product.registered"
	ProductUpdated    = "product.updated"
	ProductDeleted    = "product.deleted"
	CartAdded         = "cart.added"
	CartRemoved       = "cart.removed"
	SaleFinalized     = "sale.finalized"
	AdminRegistered   = "admin.registered"
	AdminRemoved      = "admin.removed"
	AdminLoginFailed  = "admin.login_failed"
)

// Wildcard listeners receive every event.
const Wildcard = "*"

// Event is a named payload of loosely typed fields.
type Event struct {
	Name   string
	Fields map[string]any
}

func New(name string) Event {
	return Event{Name: name, Fields: map[string]any{}}
}

// With sets a field and returns the event for chaining.
func (e Event) With(key string, value any) Event {
	if e.Fields == nil {
		e.Fields = map[string]any{}
	}
	e.Fields[key] = value
	return e
}

// Int returns an integer field, zero when absent.
func (e Event) Int(key string) int {
	v, _ := e.Fields[key].(int)
	return v
}

// Args flattens the fields into slog-style key/value pairs.
func (e Event) Args() []any {
	out := make([]any, 0, len(e.Fields)*2)
	for k, v := range e.Fields {
		out = append(out, k, v)
	}
	return out
}

// Handler receives a dispatched event.
type Handler func(Event)

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name, or Wildcard.
func (b *Bus) Listen(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Fire dispatches synchronously, named listeners first. A nil bus is a no-op.
func (b *Bus) Fire(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	hs := make([]Handler, 0, len(b.handlers[e.Name])+len(b.handlers[Wildcard]))
	hs = append(hs, b.handlers[e.Name]...)
	hs = append(hs, b.handlers[Wildcard]...)
	b.mu.RUnlock()

	for _, h := range hs {
		h(e)
	}
}

// Flush removes all listeners (useful in tests).
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}
