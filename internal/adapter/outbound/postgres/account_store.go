package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
)

const (
	// maxUsernameAttempts bounds the suffixes tried for a taken username.
	maxUsernameAttempts = 20

	pgForeignKeyViolation = "23503"
)

const (
	insertAccountSQL = `INSERT INTO accounts (id, username) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`
	upsertFieldSQL   = `INSERT INTO account_fields (account_id, field, value) VALUES ($1, $2, $3)
		ON CONFLICT (account_id, field) DO UPDATE SET value = EXCLUDED.value`
	selectFieldsSQL = `SELECT field, value FROM account_fields WHERE account_id = $1 AND field = ANY($2)`
	deleteFieldSQL  = `DELETE FROM account_fields WHERE account_id = $1 AND field = $2`
)

// accountStore implements store.AccountStore on two tables: accounts holds
// identity and the unique username, account_fields holds every named field.
type accountStore struct {
	pool *pgxpool.Pool
}

// NewAccountStore creates a new AccountStore.
func NewAccountStore(pool *pgxpool.Pool) store.AccountStore {
	return &accountStore{pool: pool}
}

func (s *accountStore) Create(ctx context.Context, account model.NewAccount) (types.ID, error) {
	if account.Username == "" {
		return "", domainerror.ErrUsernameRequired
	}

	id := types.NewID()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	username, err := claimUsername(ctx, tx, id, account.Username)
	if err != nil {
		return "", err
	}

	fields := map[string]string{
		model.FieldUsername: username,
		model.FieldEmail:    account.Email,
	}
	if err := upsertFields(ctx, tx, id, fields); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit account: %w", err)
	}

	return id, nil
}

func claimUsername(ctx context.Context, tx pgx.Tx, id types.ID, username string) (string, error) {
	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		candidate := username
		if attempt > 0 {
			candidate = username + strconv.Itoa(attempt)
		}

		tag, err := tx.Exec(ctx, insertAccountSQL, id.String(), candidate)
		if err != nil {
			return "", fmt.Errorf("failed to insert account: %w", err)
		}
		if tag.RowsAffected() == 1 {
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

	rows, err := s.pool.Query(ctx, selectFieldsSQL, accountID.String(), fields)
	if err != nil {
		return nil, fmt.Errorf("failed to get account fields: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("failed to scan account field: %w", err)
		}
		result[field] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account fields: %w", err)
	}

	return result, nil
}

func (s *accountStore) SetField(ctx context.Context, accountID types.ID, field, value string) error {
	_, err := s.pool.Exec(ctx, upsertFieldSQL, accountID.String(), field, value)
	if err != nil {
		return wrapWriteError("failed to set account field", err)
	}
	return nil
}

func (s *accountStore) SetFields(ctx context.Context, accountID types.ID, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := upsertFields(ctx, tx, accountID, fields); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit account fields: %w", err)
	}
	return nil
}

func (s *accountStore) DeleteField(ctx context.Context, accountID types.ID, field string) error {
	if _, err := s.pool.Exec(ctx, deleteFieldSQL, accountID.String(), field); err != nil {
		return fmt.Errorf("failed to delete account field: %w", err)
	}
	return nil
}

func upsertFields(ctx context.Context, tx pgx.Tx, accountID types.ID, fields map[string]string) error {
	batch := &pgx.Batch{}
	for field, value := range fields {
		batch.Queue(upsertFieldSQL, accountID.String(), field, value)
	}

	results := tx.SendBatch(ctx, batch)
	for range fields {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return wrapWriteError("failed to set account fields", err)
		}
	}
	if err := results.Close(); err != nil {
		return wrapWriteError("failed to set account fields", err)
	}
	return nil
}

// wrapWriteError reports writes against a missing account as not found.
func wrapWriteError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return domainerror.ErrAccountNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
