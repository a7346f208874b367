package messaging

import (
	"context"

	"github.com/0xsj/overwatch-kernel/internal/domain/event"
)

// EventPublisher defines the interface for publishing domain events.
type EventPublisher interface {
	// Publish publishes a single event.
	Publish(ctx context.Context, evt event.Event) error
}

// Topic names for kernel events.
const (
	TopicUserEvents = "kernel.user"
)

// TopicForEvent returns the appropriate topic for an event type.
func TopicForEvent(evt event.Event) string {
	switch evt.AggregateType() {
	case event.AggregateTypeUser:
		return TopicUserEvents
	default:
		return "kernel." + evt.AggregateType()
	}
}
