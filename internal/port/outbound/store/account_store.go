package store

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
)

// AccountStore is the host's user-account store. Only the fields this service
// owns are ever read or written through it; accounts are never deleted here.
type AccountStore interface {
	// Create creates a new account and returns its identifier.
	// Creation is atomic: on error no account exists.
	Create(ctx context.Context, account model.NewAccount) (types.ID, error)

	// GetFields reads the named fields of an account.
	// Missing fields are absent from the returned map.
	GetFields(ctx context.Context, accountID types.ID, fields ...string) (map[string]string, error)

	// SetField writes a single field.
	SetField(ctx context.Context, accountID types.ID, field, value string) error

	// SetFields writes several fields at once.
	SetFields(ctx context.Context, accountID types.ID, fields map[string]string) error

	// DeleteField removes a single field from the account record.
	DeleteField(ctx context.Context, accountID types.ID, field string) error
}
