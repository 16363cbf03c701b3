package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
)

// objectStore implements store.ObjectStore on Redis hashes and sorted sets.
type objectStore struct {
	client redis.UniversalClient
}

// NewObjectStore creates a new ObjectStore.
func NewObjectStore(client redis.UniversalClient) store.ObjectStore {
	return &objectStore{client: client}
}

func (s *objectStore) GetObjectField(ctx context.Context, key, field string) (string, error) {
	value, err := s.client.HGet(ctx, key, field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", store.ErrNotFound
		}
		return "", fmt.Errorf("failed to get object field: %w", err)
	}
	return value, nil
}

func (s *objectStore) SetObjectField(ctx context.Context, key, field, value string) error {
	if err := s.client.HSet(ctx, key, field, value).Err(); err != nil {
		return fmt.Errorf("failed to set object field: %w", err)
	}
	return nil
}

func (s *objectStore) DeleteObjectField(ctx context.Context, key, field string) error {
	if err := s.client.HDel(ctx, key, field).Err(); err != nil {
		return fmt.Errorf("failed to delete object field: %w", err)
	}
	return nil
}

func (s *objectStore) SortedSetRemove(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := s.client.ZRem(ctx, key, args...).Err(); err != nil {
		return fmt.Errorf("failed to remove sorted set members: %w", err)
	}
	return nil
}
