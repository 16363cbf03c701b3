package store

import (
	"context"
)

// SettingsStore holds durable plugin settings, one flat object per plugin.
type SettingsStore interface {
	// Get returns all settings stored under key. Unknown keys yield an empty map.
	Get(ctx context.Context, key string) (map[string]string, error)

	// Set merges values into the settings stored under key.
	Set(ctx context.Context, key string, values map[string]string) error
}
