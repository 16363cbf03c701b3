package event

import (
	"github.com/0xsj/overwatch-pkg/types"
)

// AccountCreated is emitted when a first-time external identity produced a new account.
type AccountCreated struct {
	BaseEvent
	AccountID  types.ID
	Username   string
	Provider   string
	ExternalID string
}

// NewAccountCreated creates a new AccountCreated event.
func NewAccountCreated(accountID types.ID, username, provider, externalID string) AccountCreated {
	return AccountCreated{
		BaseEvent:  NewBaseEvent(EventTypeAccountCreated, accountID, AggregateTypeAccount),
		AccountID:  accountID,
		Username:   username,
		Provider:   provider,
		ExternalID: externalID,
	}
}

// IdentityResolved is emitted after a login resolved an external identity to an account.
type IdentityResolved struct {
	BaseEvent
	AccountID  types.ID
	Provider   string
	ExternalID string
	Created    bool
}

// NewIdentityResolved creates a new IdentityResolved event.
func NewIdentityResolved(accountID types.ID, provider, externalID string, created bool) IdentityResolved {
	return IdentityResolved{
		BaseEvent:  NewBaseEvent(EventTypeIdentityResolved, accountID, AggregateTypeAccount),
		AccountID:  accountID,
		Provider:   provider,
		ExternalID: externalID,
		Created:    created,
	}
}

// IdentityLinked is emitted when an authenticated account connected an external identity.
type IdentityLinked struct {
	BaseEvent
	AccountID  types.ID
	Provider   string
	ExternalID string
}

// NewIdentityLinked creates a new IdentityLinked event.
func NewIdentityLinked(accountID types.ID, provider, externalID string) IdentityLinked {
	return IdentityLinked{
		BaseEvent:  NewBaseEvent(EventTypeIdentityLinked, accountID, AggregateTypeAccount),
		AccountID:  accountID,
		Provider:   provider,
		ExternalID: externalID,
	}
}

// IdentityUnlinked is emitted when the link was removed on account deletion.
type IdentityUnlinked struct {
	BaseEvent
	AccountID  types.ID
	Provider   string
	ExternalID string
}

// NewIdentityUnlinked creates a new IdentityUnlinked event.
func NewIdentityUnlinked(accountID types.ID, provider, externalID string) IdentityUnlinked {
	return IdentityUnlinked{
		BaseEvent:  NewBaseEvent(EventTypeIdentityUnlinked, accountID, AggregateTypeAccount),
		AccountID:  accountID,
		Provider:   provider,
		ExternalID: externalID,
	}
}
