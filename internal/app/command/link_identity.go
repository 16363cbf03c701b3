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

type linkIdentityHandler struct {
	accounts  store.AccountStore
	objects   store.ObjectStore
	refresh   command.RefreshExternalInfoHandler
	publisher messaging.EventPublisher
	provider  model.Provider
	logger    logging.Logger
}

var _ command.Handler[command.LinkIdentity, command.LinkIdentityResult] = (*linkIdentityHandler)(nil)

func NewLinkIdentityHandler(
	accounts store.AccountStore,
	objects store.ObjectStore,
	refresh command.RefreshExternalInfoHandler,
	publisher messaging.EventPublisher,
	provider model.Provider,
	logger logging.Logger,
) command.LinkIdentityHandler {
	return &linkIdentityHandler{
		accounts:  accounts,
		objects:   objects,
		refresh:   refresh,
		publisher: publisher,
		provider:  provider,
		logger:    logger,
	}
}

func (h *linkIdentityHandler) Handle(ctx context.Context, cmd command.LinkIdentity) (command.LinkIdentityResult, error) {
	if cmd.AccountID.IsEmpty() {
		return command.LinkIdentityResult{}, domainerror.ErrAccountIDRequired
	}
	if cmd.ExternalID == "" {
		return command.LinkIdentityResult{}, domainerror.ErrExternalIDRequired
	}

	// 1. Store the external id on the account
	if err := h.accounts.SetField(ctx, cmd.AccountID, h.provider.IDField(), cmd.ExternalID); err != nil {
		return command.LinkIdentityResult{}, err
	}

	// 2. Point the mapping at the account; an existing entry is overwritten
	if err := h.objects.SetObjectField(ctx, h.provider.MappingObject(), cmd.ExternalID, cmd.AccountID.String()); err != nil {
		return command.LinkIdentityResult{}, err
	}

	// 3. Credentials are best effort
	if _, err := h.refresh.Handle(ctx, command.RefreshExternalInfo{
		AccountID:   cmd.AccountID,
		AccessToken: cmd.AccessToken,
		Username:    cmd.Username,
	}); err != nil {
		h.logger.Warn("failed to refresh external access information",
			"provider", h.provider.Key(),
			"account_id", cmd.AccountID.String(),
			"error", err,
		)
	}

	_ = h.publisher.Publish(ctx, event.NewIdentityLinked(cmd.AccountID, h.provider.Key(), cmd.ExternalID))

	return command.LinkIdentityResult{AccountID: cmd.AccountID}, nil
}
