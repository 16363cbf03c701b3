package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/event"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/messaging"
)

const (
	defaultSubjectPrefix = "overwatch"

	headerEventType = "Event-Type"
	headerSource    = "Event-Source"
)

// eventPublisher implements messaging.EventPublisher.
type eventPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
	source        string
}

// NewEventPublisher creates a new EventPublisher. Source names the
// publishing plugin in every envelope.
func NewEventPublisher(conn *nats.Conn, subjectPrefix, source string) messaging.EventPublisher {
	if subjectPrefix == "" {
		subjectPrefix = defaultSubjectPrefix
	}
	return &eventPublisher{
		conn:          conn,
		subjectPrefix: subjectPrefix,
		source:        source,
	}
}

func (p *eventPublisher) Publish(ctx context.Context, evt event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(p.envelope(evt))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := nats.NewMsg(p.subjectForEvent(evt))
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, evt.EventID().String())
	msg.Header.Set(headerEventType, evt.EventType())
	msg.Header.Set(headerSource, p.source)

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", evt.EventType(), err)
	}

	return nil
}

func (p *eventPublisher) PublishAll(ctx context.Context, events []event.Event) error {
	for _, evt := range events {
		if err := p.Publish(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}

func (p *eventPublisher) subjectForEvent(evt event.Event) string {
	return SubjectFor(p.subjectPrefix, messaging.TopicForEvent(evt))
}

func (p *eventPublisher) envelope(evt event.Event) eventEnvelope {
	return eventEnvelope{
		EventID:       evt.EventID().String(),
		EventType:     evt.EventType(),
		Source:        p.source,
		AggregateID:   evt.AggregateID().String(),
		AggregateType: evt.AggregateType(),
		OccurredAt:    evt.OccurredAt().Time().Unix(),
		Payload:       evt,
	}
}

// SubjectFor joins a subject prefix and a topic.
func SubjectFor(prefix, topic string) string {
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}
	return fmt.Sprintf("%s.%s", prefix, topic)
}

// eventEnvelope wraps an event with metadata for transport.
type eventEnvelope struct {
	EventID       string      `json:"event_id"`
	EventType     string      `json:"event_type"`
	Source        string      `json:"source"`
	AggregateID   string      `json:"aggregate_id"`
	AggregateType string      `json:"aggregate_type"`
	OccurredAt    int64       `json:"occurred_at"`
	Payload       interface{} `json:"payload"`
}
