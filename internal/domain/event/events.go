package event

import (
	"github.com/0xsj/overwatch-pkg/types"
)

// Event is a fact about an account's external identities, published after
// the state change it describes has been written.
type Event interface {
	EventID() types.ID
	// EventType is a dotted name such as "identity.linked".
	EventType() string
	OccurredAt() types.Timestamp
	// AggregateID is the account id.
	AggregateID() types.ID
	AggregateType() string
}

// BaseEvent carries the envelope fields shared by every event.
type BaseEvent struct {
	eventID       types.ID
	eventType     string
	occurredAt    types.Timestamp
	aggregateID   types.ID
	aggregateType string
}

func NewBaseEvent(eventType string, aggregateID types.ID, aggregateType string) BaseEvent {
	return BaseEvent{
		eventID:       types.NewID(),
		eventType:     eventType,
		occurredAt:    types.Now(),
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
	}
}

func (e BaseEvent) EventID() types.ID           { return e.eventID }
func (e BaseEvent) EventType() string           { return e.eventType }
func (e BaseEvent) OccurredAt() types.Timestamp { return e.occurredAt }
func (e BaseEvent) AggregateID() types.ID       { return e.aggregateID }
func (e BaseEvent) AggregateType() string       { return e.aggregateType }

const AggregateTypeAccount = "account"

const (
	EventTypeAccountCreated = "account.created"

	EventTypeIdentityResolved = "identity.resolved"
	EventTypeIdentityLinked   = "identity.linked"
	EventTypeIdentityUnlinked = "identity.unlinked"
)
