package store

import (
	"context"
)

// ObjectStore is a generic key-value store of named objects holding fields,
// plus sorted sets. Writes of a single field are atomic.
type ObjectStore interface {
	// GetObjectField reads one field of a named object.
	// Returns ErrNotFound when the field is not set.
	GetObjectField(ctx context.Context, key, field string) (string, error)

	// SetObjectField writes one field of a named object.
	SetObjectField(ctx context.Context, key, field, value string) error

	// DeleteObjectField removes one field of a named object.
	DeleteObjectField(ctx context.Context, key, field string) error

	// SortedSetRemove removes members from a sorted set.
	SortedSetRemove(ctx context.Context, key string, members ...string) error
}
