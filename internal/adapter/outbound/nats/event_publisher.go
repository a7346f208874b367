package nats

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/nats-io/nats.go"

	"github.com/0xsj/overwatch-kernel/internal/domain/event"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/messaging"
)

const defaultSubjectPrefix = "overwatch"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Source identifies the service that emitted an event.
type Source struct {
	DID     string
	Service string
}

// Option configures the EventPublisher.
type Option func(*eventPublisher)

// WithSource stamps every envelope with the emitting service's identity.
func WithSource(src Source) Option {
	return func(p *eventPublisher) {
		p.source = src
	}
}

// eventPublisher implements messaging.EventPublisher.
type eventPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
	source        Source
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(conn *nats.Conn, subjectPrefix string, opts ...Option) messaging.EventPublisher {
	if subjectPrefix == "" {
		subjectPrefix = defaultSubjectPrefix
	}
	p := &eventPublisher{
		conn:          conn,
		subjectPrefix: subjectPrefix,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *eventPublisher) Publish(ctx context.Context, evt event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(p.envelopeFor(evt))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.conn.Publish(p.subjectForEvent(evt), data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (p *eventPublisher) subjectForEvent(evt event.Event) string {
	topic := messaging.TopicForEvent(evt)
	return fmt.Sprintf("%s.%s", p.subjectPrefix, topic)
}

func (p *eventPublisher) envelopeFor(evt event.Event) eventEnvelope {
	return eventEnvelope{
		EventID:       evt.EventID().String(),
		EventType:     evt.EventType(),
		AggregateID:   evt.AggregateID().String(),
		AggregateType: evt.AggregateType(),
		OccurredAt:    evt.OccurredAt().Time().Unix(),
		SourceDID:     p.source.DID,
		SourceService: p.source.Service,
		Payload:       payloadFor(evt),
	}
}

// payloadFor flattens known events into wire types; anything else is sent as is.
func payloadFor(evt event.Event) any {
	switch e := evt.(type) {
	case event.UserUpdated:
		return userUpdatedPayload{
			UserID:        e.UserID.String(),
			UpdatedFields: e.UpdatedFields,
		}
	default:
		return evt
	}
}

// eventEnvelope wraps an event with metadata for transport.
type eventEnvelope struct {
	EventID       string `json:"event_id"`
	EventType     string `json:"event_type"`
	AggregateID   string `json:"aggregate_id"`
	AggregateType string `json:"aggregate_type"`
	OccurredAt    int64  `json:"occurred_at"`
	SourceDID     string `json:"source_did,omitempty"`
	SourceService string `json:"source_service,omitempty"`
	Payload       any    `json:"payload"`
}

type userUpdatedPayload struct {
	UserID        string   `json:"user_id"`
	UpdatedFields []string `json:"updated_fields"`
}
