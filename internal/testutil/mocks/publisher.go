package mocks

import (
	"context"
	"sync"

	"github.com/0xsj/overwatch-kernel/internal/domain/event"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/messaging"
)

var _ messaging.EventPublisher = (*EventPublisher)(nil)

// EventPublisher is a mock implementation of messaging.EventPublisher.
type EventPublisher struct {
	mu sync.RWMutex

	// Published events
	events []event.Event

	// Events by type for easier querying
	byType map[string][]event.Event

	// Call tracking
	Calls struct {
		Publish int
	}

	// Error injection
	Errors struct {
		Publish error
	}
}

// NewEventPublisher creates a new mock EventPublisher.
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		events: make([]event.Event, 0),
		byType: make(map[string][]event.Event),
	}
}

func (m *EventPublisher) Publish(ctx context.Context, evt event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Publish++

	if m.Errors.Publish != nil {
		return m.Errors.Publish
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.recordEvent(evt)
	return nil
}

// recordEvent stores the event in all indexes (must hold lock).
func (m *EventPublisher) recordEvent(evt event.Event) {
	m.events = append(m.events, evt)
	m.byType[evt.EventType()] = append(m.byType[evt.EventType()], evt)
}

// --- Query Methods ---

// Events returns all published events.
func (m *EventPublisher) Events() []event.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]event.Event, len(m.events))
	copy(result, m.events)
	return result
}

// EventCount returns the total number of published events.
func (m *EventPublisher) EventCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

// HasEvent checks if any event of the given type was published.
func (m *EventPublisher) HasEvent(eventType string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.byType[eventType]) > 0
}

// UserUpdatedEvents returns all UserUpdated events.
func (m *EventPublisher) UserUpdatedEvents() []event.UserUpdated {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := m.byType[event.EventTypeUserUpdated]
	result := make([]event.UserUpdated, 0, len(events))
	for _, evt := range events {
		if typed, ok := evt.(event.UserUpdated); ok {
			result = append(result, typed)
		}
	}
	return result
}
