package messaging

import (
	"context"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/event"
)

// EventPublisher defines the interface for publishing domain events.
type EventPublisher interface {
	// Publish publishes a single event.
	Publish(ctx context.Context, evt event.Event) error

	// PublishAll publishes multiple events.
	PublishAll(ctx context.Context, events []event.Event) error
}

// Topic names for identity events.
const (
	TopicAccountEvents  = "identity.account"
	TopicIdentityEvents = "identity.link"
)

// TopicForEvent returns the appropriate topic for an event type.
func TopicForEvent(evt event.Event) string {
	switch evt.EventType() {
	case event.EventTypeAccountCreated:
		return TopicAccountEvents
	default:
		return TopicIdentityEvents
	}
}

// Discard returns an EventPublisher that drops every event.
func Discard() EventPublisher {
	return discardPublisher{}
}

type discardPublisher struct{}

func (discardPublisher) Publish(context.Context, event.Event) error      { return nil }
func (discardPublisher) PublishAll(context.Context, []event.Event) error { return nil }
