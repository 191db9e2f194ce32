package testkit

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/shashiranjanraj/mercado/pkg/event"
)

// ─── EventRecorder: testify-backed listener ──────────────────────────────────

// EventRecorder listens to every event on a bus and records it through a
// testify mock, so callers can use the usual On/AssertCalled chains:
//
//	rec := testkit.NewEventRecorder(bus)
//	// ... drive the market ...
//	rec.Mock().AssertCalled(t, "Handle", event.SaleFinalized)
type EventRecorder struct {
	m      mock.Mock
	mu     sync.Mutex
	events []event.Event
}

// NewEventRecorder attaches a recorder to bus.
func NewEventRecorder(bus *event.Bus) *EventRecorder {
	r := &EventRecorder{}
	r.m.On("Handle", mock.AnythingOfType("string")).Return()
	bus.Listen(event.Wildcard, r.Handle)
	return r
}

// Handle records e. It is the bus listener.
func (r *EventRecorder) Handle(e event.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	r.m.Called(e.Name)
}

// Names returns the recorded event names in firing order.
func (r *EventRecorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}

// Last returns the most recent event with the given name.
func (r *EventRecorder) Last(name string) (event.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Name == name {
			return r.events[i], true
		}
	}
	return event.Event{}, false
}

// Reset clears recorded events and testify call history.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.m.Calls = nil
}

// Mock exposes the embedded testify mock for advanced call expectations.
func (r *EventRecorder) Mock() *mock.Mock { return &r.m }
