package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
)

const (
	accountKeyPrefix = "user:"

	usernameIndexKey = "username:uid"
	emailIndexKey    = "email:uid"
	joinDateSetKey   = "users:joindate"

	fieldUID      = "uid"
	fieldJoinDate = "joindate"

	// maxUsernameAttempts bounds the suffixes tried for a taken username.
	maxUsernameAttempts = 20
)

// accountStore implements store.AccountStore with one hash per account.
type accountStore struct {
	client redis.UniversalClient
}

// NewAccountStore creates a new AccountStore.
func NewAccountStore(client redis.UniversalClient) store.AccountStore {
	return &accountStore{client: client}
}

// Create claims a free username, then writes the account record and its
// indexes in one transaction. The claim is released if the transaction fails.
func (s *accountStore) Create(ctx context.Context, account model.NewAccount) (types.ID, error) {
	if account.Username == "" {
		return "", domainerror.ErrUsernameRequired
	}

	id := types.NewID()

	username, err := s.claimUsername(ctx, account.Username, id)
	if err != nil {
		return "", err
	}

	now := time.Now()
	score := float64(now.UnixMilli())

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, accountKey(id), map[string]interface{}{
			fieldUID:            id.String(),
			model.FieldUsername: username,
			model.FieldEmail:    account.Email,
			fieldJoinDate:       strconv.FormatInt(now.UnixMilli(), 10),
		})
		pipe.ZAdd(ctx, joinDateSetKey, redis.Z{Score: score, Member: id.String()})
		pipe.ZAdd(ctx, model.NotValidatedSet, redis.Z{Score: score, Member: id.String()})
		if account.Email != "" {
			pipe.HSetNX(ctx, emailIndexKey, account.Email, id.String())
		}
		return nil
	})
	if err != nil {
		_ = s.client.HDel(ctx, usernameIndexKey, username).Err()
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	return id, nil
}

// claimUsername reserves the first free name among username, username1, username2, ...
func (s *accountStore) claimUsername(ctx context.Context, username string, id types.ID) (string, error) {
	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		candidate := username
		if attempt > 0 {
			candidate = username + strconv.Itoa(attempt)
		}

		ok, err := s.client.HSetNX(ctx, usernameIndexKey, candidate, id.String()).Result()
		if err != nil {
			return "", fmt.Errorf("failed to reserve username: %w", err)
		}
		if ok {
			return candidate, nil
		}
	}
	return "", domainerror.ErrUsernameUnavailable
}

func (s *accountStore) GetFields(ctx context.Context, accountID types.ID, fields ...string) (map[string]string, error) {
	result := make(map[string]string, len(fields))
	if len(fields) == 0 {
		return result, nil
	}

	values, err := s.client.HMGet(ctx, accountKey(accountID), fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get account fields: %w", err)
	}

	for i, v := range values {
		if str, ok := v.(string); ok {
			result[fields[i]] = str
		}
	}
	return result, nil
}

func (s *accountStore) SetField(ctx context.Context, accountID types.ID, field, value string) error {
	if err := s.client.HSet(ctx, accountKey(accountID), field, value).Err(); err != nil {
		return fmt.Errorf("failed to set account field: %w", err)
	}
	return nil
}

func (s *accountStore) SetFields(ctx context.Context, accountID types.ID, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.client.HSet(ctx, accountKey(accountID), hashValues(fields)).Err(); err != nil {
		return fmt.Errorf("failed to set account fields: %w", err)
	}
	return nil
}

func (s *accountStore) DeleteField(ctx context.Context, accountID types.ID, field string) error {
	if err := s.client.HDel(ctx, accountKey(accountID), field).Err(); err != nil {
		return fmt.Errorf("failed to delete account field: %w", err)
	}
	return nil
}

func accountKey(id types.ID) string {
	return accountKeyPrefix + id.String()
}
