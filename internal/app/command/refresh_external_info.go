package command

import (
	"context"

	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/command"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/logging"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
)

// RefreshConfig controls how external info refreshes are logged.
type RefreshConfig struct {
	// LogAccessTokens writes raw access tokens to the debug log.
	// Only enable when log access is as trusted as the account store.
	LogAccessTokens bool
}

type refreshExternalInfoHandler struct {
	accounts store.AccountStore
	provider model.Provider
	config   RefreshConfig
	logger   logging.Logger
}

var _ command.Handler[command.RefreshExternalInfo, command.RefreshExternalInfoResult] = (*refreshExternalInfoHandler)(nil)

func NewRefreshExternalInfoHandler(
	accounts store.AccountStore,
	provider model.Provider,
	config RefreshConfig,
	logger logging.Logger,
) command.RefreshExternalInfoHandler {
	return &refreshExternalInfoHandler{
		accounts: accounts,
		provider: provider,
		config:   config,
		logger:   logger,
	}
}

func (h *refreshExternalInfoHandler) Handle(ctx context.Context, cmd command.RefreshExternalInfo) (command.RefreshExternalInfoResult, error) {
	if cmd.AccountID.IsEmpty() {
		return command.RefreshExternalInfoResult{}, domainerror.ErrAccountIDRequired
	}

	h.logger.Debug("storing external access information",
		"provider", h.provider.Key(),
		"account_id", cmd.AccountID.String(),
		"access_token", h.displayToken(cmd.AccessToken),
		"username", cmd.Username,
	)

	err := h.accounts.SetFields(ctx, cmd.AccountID, map[string]string{
		h.provider.AccessTokenField(): cmd.AccessToken,
		h.provider.UsernameField():    cmd.Username,
	})
	if err != nil {
		return command.RefreshExternalInfoResult{}, err
	}

	return command.RefreshExternalInfoResult{}, nil
}

func (h *refreshExternalInfoHandler) displayToken(token string) string {
	if h.config.LogAccessTokens {
		return token
	}
	return redactToken(token)
}

// redactToken keeps a short prefix so operators can correlate tokens
// without being able to replay them.
func redactToken(token string) string {
	if len(token) <= 8 {
		return "[redacted]"
	}
	return token[:4] + "...[redacted]"
}
