package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
)

const settingsKeyPrefix = "settings:"

// settingsStore implements store.SettingsStore with one hash per plugin.
type settingsStore struct {
	client redis.UniversalClient
}

// NewSettingsStore creates a new SettingsStore.
func NewSettingsStore(client redis.UniversalClient) store.SettingsStore {
	return &settingsStore{client: client}
}

func (s *settingsStore) Get(ctx context.Context, key string) (map[string]string, error) {
	values, err := s.client.HGetAll(ctx, settingsKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return values, nil
}

func (s *settingsStore) Set(ctx context.Context, key string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	if err := s.client.HSet(ctx, settingsKey(key), hashValues(values)).Err(); err != nil {
		return fmt.Errorf("failed to set settings: %w", err)
	}
	return nil
}

func settingsKey(key string) string {
	return settingsKeyPrefix + key
}

func hashValues(values map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
