package command

import (
	"context"

	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/event"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/command"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/logging"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
)

type unlinkIdentityHandler struct {
	accounts  store.AccountStore
	objects   store.ObjectStore
	publisher messaging.EventPublisher
	provider  model.Provider
	logger    logging.Logger
}

var _ command.Handler[command.UnlinkIdentity, command.UnlinkIdentityResult] = (*unlinkIdentityHandler)(nil)

func NewUnlinkIdentityHandler(
	accounts store.AccountStore,
	objects store.ObjectStore,
	publisher messaging.EventPublisher,
	provider model.Provider,
	logger logging.Logger,
) command.UnlinkIdentityHandler {
	return &unlinkIdentityHandler{
		accounts:  accounts,
		objects:   objects,
		publisher: publisher,
		provider:  provider,
		logger:    logger,
	}
}

// Handle runs in order; each step needs the previous one to have succeeded.
// Deletions already made are not restored when a later step fails.
func (h *unlinkIdentityHandler) Handle(ctx context.Context, cmd command.UnlinkIdentity) (command.UnlinkIdentityResult, error) {
	if cmd.AccountID.IsEmpty() {
		return command.UnlinkIdentityResult{}, domainerror.ErrAccountIDRequired
	}

	// 1. Read the stored external id
	fields, err := h.accounts.GetFields(ctx, cmd.AccountID, h.provider.IDField())
	if err != nil {
		return command.UnlinkIdentityResult{}, h.failed(cmd, err)
	}
	externalID := fields[h.provider.IDField()]

	// 2. Drop the mapping entry
	if externalID != "" {
		if err := h.objects.DeleteObjectField(ctx, h.provider.MappingObject(), externalID); err != nil {
			return command.UnlinkIdentityResult{}, h.failed(cmd, err)
		}
	}

	// 3. Clear the external id from the account
	if err := h.accounts.DeleteField(ctx, cmd.AccountID, h.provider.IDField()); err != nil {
		return command.UnlinkIdentityResult{}, h.failed(cmd, err)
	}

	if externalID != "" {
		_ = h.publisher.Publish(ctx, event.NewIdentityUnlinked(cmd.AccountID, h.provider.Key(), externalID))
	}

	return command.UnlinkIdentityResult{AccountID: cmd.AccountID}, nil
}

func (h *unlinkIdentityHandler) failed(cmd command.UnlinkIdentity, err error) error {
	h.logger.Error("could not remove external id data",
		"provider", h.provider.Key(),
		"command", cmd.CommandName(),
		"account_id", cmd.AccountID.String(),
		"error", err,
	)
	return err
}
