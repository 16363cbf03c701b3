package command

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/event"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/command"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/logging"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
)

type resolveIdentityHandler struct {
	accounts  store.AccountStore
	objects   store.ObjectStore
	refresh   command.RefreshExternalInfoHandler
	publisher messaging.EventPublisher
	provider  model.Provider
	logger    logging.Logger
}

var _ command.Handler[command.ResolveIdentity, command.ResolveIdentityResult] = (*resolveIdentityHandler)(nil)

func NewResolveIdentityHandler(
	accounts store.AccountStore,
	objects store.ObjectStore,
	refresh command.RefreshExternalInfoHandler,
	publisher messaging.EventPublisher,
	provider model.Provider,
	logger logging.Logger,
) command.ResolveIdentityHandler {
	return &resolveIdentityHandler{
		accounts:  accounts,
		objects:   objects,
		refresh:   refresh,
		publisher: publisher,
		provider:  provider,
		logger:    logger,
	}
}

func (h *resolveIdentityHandler) Handle(ctx context.Context, cmd command.ResolveIdentity) (command.ResolveIdentityResult, error) {
	if cmd.ExternalID == "" {
		return command.ResolveIdentityResult{}, domainerror.ErrExternalIDRequired
	}

	// 1. Look up the identity mapping
	accountID, found, err := h.lookup(ctx, cmd.ExternalID)
	if err != nil {
		return command.ResolveIdentityResult{}, err
	}

	// 2. Returning user: refresh credentials, never touch the profile
	if found {
		h.refreshQuietly(ctx, accountID, cmd)

		_ = h.publisher.Publish(ctx, event.NewIdentityResolved(
			accountID,
			h.provider.Key(),
			cmd.ExternalID,
			false,
		))

		return command.ResolveIdentityResult{AccountID: accountID}, nil
	}

	// 3. First sight: create the account
	accountID, err = h.create(ctx, cmd)
	if err != nil {
		return command.ResolveIdentityResult{}, err
	}

	_ = h.publisher.PublishAll(ctx, []event.Event{
		event.NewAccountCreated(accountID, cmd.Username, h.provider.Key(), cmd.ExternalID),
		event.NewIdentityResolved(accountID, h.provider.Key(), cmd.ExternalID, true),
	})

	return command.ResolveIdentityResult{
		AccountID: accountID,
		Created:   true,
	}, nil
}

func (h *resolveIdentityHandler) lookup(ctx context.Context, externalID string) (types.ID, bool, error) {
	value, err := h.objects.GetObjectField(ctx, h.provider.MappingObject(), externalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if value == "" {
		return "", false, nil
	}
	return types.ID(value), true, nil
}

func (h *resolveIdentityHandler) create(ctx context.Context, cmd command.ResolveIdentity) (types.ID, error) {
	newAccount, err := model.NewAccountForIdentity(h.provider, cmd.Username)
	if err != nil {
		return "", err
	}

	accountID, err := h.accounts.Create(ctx, newAccount)
	if err != nil {
		h.logger.Error("failed to create account for external identity",
			"provider", h.provider.Key(),
			"external_id", cmd.ExternalID,
			"error", err,
		)
		return "", err
	}

	// Providers have already verified the person; trust the placeholder email.
	if err := h.accounts.SetField(ctx, accountID, model.FieldEmailConfirmed, model.FlagTrue); err != nil {
		return "", h.partialWriteFailed(accountID, err)
	}
	if err := h.objects.SortedSetRemove(ctx, model.NotValidatedSet, accountID.String()); err != nil {
		return "", h.partialWriteFailed(accountID, err)
	}

	// The mapping and the profile are written concurrently. The first error wins
	// and writes already applied are kept. The mapping write ignores refresh and
	// profile failures, otherwise the next login would create another account.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		h.refreshQuietly(ctx, accountID, cmd)
		return h.objects.SetObjectField(ctx, h.provider.MappingObject(), cmd.ExternalID, accountID.String())
	})

	g.Go(func() error {
		fields := model.MergeProfile(cmd.DisplayName, cmd.PictureURL, cmd.WebsiteURL)
		fields[h.provider.IDField()] = cmd.ExternalID
		return h.accounts.SetFields(gctx, accountID, fields)
	})

	if err := g.Wait(); err != nil {
		return "", h.partialWriteFailed(accountID, err)
	}

	return accountID, nil
}

func (h *resolveIdentityHandler) refreshQuietly(ctx context.Context, accountID types.ID, cmd command.ResolveIdentity) {
	_, err := h.refresh.Handle(ctx, command.RefreshExternalInfo{
		AccountID:   accountID,
		AccessToken: cmd.AccessToken,
		Username:    cmd.Username,
	})
	if err != nil {
		h.logger.Warn("failed to refresh external access information",
			"provider", h.provider.Key(),
			"account_id", accountID.String(),
			"error", err,
		)
	}
}

// partialWriteFailed logs a failure that left a created account without all
// of its fields. Nothing is rolled back.
func (h *resolveIdentityHandler) partialWriteFailed(accountID types.ID, err error) error {
	h.logger.Error("account created but linking writes failed",
		"provider", h.provider.Key(),
		"account_id", accountID.String(),
		"error", err,
	)
	return err
}
