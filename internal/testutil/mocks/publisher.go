package mocks

import (
	"context"
	"sync"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/event"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/messaging"
)

// EventPublisher records published events in order.
type EventPublisher struct {
	mu     sync.Mutex
	events []event.Event

	Calls struct {
		Publish    int
		PublishAll int
	}

	Errors struct {
		Publish    error
		PublishAll error
	}
}

func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

func (m *EventPublisher) Publish(ctx context.Context, evt event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Publish++

	if m.Errors.Publish != nil {
		return m.Errors.Publish
	}
	m.events = append(m.events, evt)
	return nil
}

func (m *EventPublisher) PublishAll(ctx context.Context, events []event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.PublishAll++

	if m.Errors.PublishAll != nil {
		return m.Errors.PublishAll
	}
	m.events = append(m.events, events...)
	return nil
}

// EventCount returns the number of recorded events.
func (m *EventPublisher) EventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// HasEvent reports whether an event of eventType was recorded.
func (m *EventPublisher) HasEvent(eventType string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, evt := range m.events {
		if evt.EventType() == eventType {
			return true
		}
	}
	return false
}

func (m *EventPublisher) IdentityResolvedEvents() []event.IdentityResolved {
	return recorded[event.IdentityResolved](m)
}

func (m *EventPublisher) AccountCreatedEvents() []event.AccountCreated {
	return recorded[event.AccountCreated](m)
}

func recorded[T event.Event](m *EventPublisher) []T {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []T
	for _, evt := range m.events {
		if typed, ok := evt.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

var _ messaging.EventPublisher = (*EventPublisher)(nil)
