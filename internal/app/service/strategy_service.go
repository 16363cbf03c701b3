package service

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/command"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/logging"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
)

// Setting names stored under the provider's settings key.
const (
	SettingClientID     = "id"
	SettingClientSecret = "secret"
)

// Credentials are the OAuth client credentials of the provider.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Complete reports whether both credentials are present.
func (c Credentials) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// StrategyConfig holds the static inputs of strategy registration.
type StrategyConfig struct {
	// SiteURL is the public base URL used to build the callback URL.
	SiteURL string

	// Fallback credentials used when the settings store has none.
	Fallback Credentials

	// OAuth carries endpoint overrides and the HTTP client; credentials and
	// the redirect URL are filled in per registration.
	OAuth OAuthConfig
}

// ClientFactory builds an OAuth client from a complete configuration.
type ClientFactory func(cfg OAuthConfig) OAuthClient

// StrategyService registers the provider's login strategy from durable settings.
type StrategyService interface {
	// Active returns the configured strategy, or nil when the provider is not
	// configured. Settings failures disable the provider; they are logged, not returned.
	Active(ctx context.Context) *Strategy

	// Credentials returns the effective credentials.
	Credentials(ctx context.Context) (Credentials, error)

	// SaveCredentials stores credentials in the settings store.
	SaveCredentials(ctx context.Context, creds Credentials) error
}

type strategyService struct {
	settings  store.SettingsStore
	link      command.LinkIdentityHandler
	resolve   command.ResolveIdentityHandler
	newClient ClientFactory
	provider  model.Provider
	config    StrategyConfig
	logger    logging.Logger
}

// NewStrategyService creates a new StrategyService. A nil factory uses NewInstagramClient.
func NewStrategyService(
	settings store.SettingsStore,
	link command.LinkIdentityHandler,
	resolve command.ResolveIdentityHandler,
	newClient ClientFactory,
	provider model.Provider,
	config StrategyConfig,
	logger logging.Logger,
) StrategyService {
	if newClient == nil {
		newClient = NewInstagramClient
	}
	return &strategyService{
		settings:  settings,
		link:      link,
		resolve:   resolve,
		newClient: newClient,
		provider:  provider,
		config:    config,
		logger:    logger,
	}
}

func (s *strategyService) Active(ctx context.Context) *Strategy {
	creds, err := s.Credentials(ctx)
	if err != nil {
		s.logger.Warn("failed to load login strategy settings",
			"provider", s.provider.Key(),
			"error", err,
		)
		return nil
	}
	if !creds.Complete() {
		return nil
	}

	oauthCfg := s.config.OAuth
	oauthCfg.ClientID = creds.ClientID
	oauthCfg.ClientSecret = creds.ClientSecret
	oauthCfg.RedirectURL = s.provider.CallbackURL(s.config.SiteURL)

	return &Strategy{
		descriptor: model.NewStrategy(s.provider),
		client:     s.newClient(oauthCfg),
		link:       s.link,
		resolve:    s.resolve,
	}
}

func (s *strategyService) Credentials(ctx context.Context) (Credentials, error) {
	values, err := s.settings.Get(ctx, s.provider.SettingsKey())
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		ClientID:     firstNonEmpty(values[SettingClientID], s.config.Fallback.ClientID),
		ClientSecret: firstNonEmpty(values[SettingClientSecret], s.config.Fallback.ClientSecret),
	}, nil
}

func (s *strategyService) SaveCredentials(ctx context.Context, creds Credentials) error {
	return s.settings.Set(ctx, s.provider.SettingsKey(), map[string]string{
		SettingClientID:     creds.ClientID,
		SettingClientSecret: creds.ClientSecret,
	})
}

// Strategy is a registered login strategy: its descriptor, the OAuth client
// and the callback run after a successful handshake.
type Strategy struct {
	descriptor model.Strategy
	client     OAuthClient
	link       command.LinkIdentityHandler
	resolve    command.ResolveIdentityHandler
}

// VerifyResult is the outcome of a successful callback.
type VerifyResult struct {
	AccountID types.ID `json:"account_id"`
	Linked    bool     `json:"linked"`
	Created   bool     `json:"created"`
}

func (s *Strategy) Descriptor() model.Strategy { return s.descriptor }
func (s *Strategy) Client() OAuthClient        { return s.client }

// Verify runs after the provider handshake. A caller signed in to an account
// connects the identity to it directly; anyone else goes through resolution.
func (s *Strategy) Verify(ctx context.Context, session model.Session, identity *model.ExternalIdentity) (VerifyResult, error) {
	if session.IsAuthenticated() {
		accountID := session.AccountID().MustGet()
		result, err := s.link.Handle(ctx, command.LinkIdentity{
			AccountID:   accountID,
			ExternalID:  identity.ID(),
			Username:    identity.Username(),
			AccessToken: identity.AccessToken(),
		})
		if err != nil {
			return VerifyResult{}, err
		}
		return VerifyResult{AccountID: result.AccountID, Linked: true}, nil
	}

	result, err := s.resolve.Handle(ctx, command.ResolveIdentity{
		ExternalID:  identity.ID(),
		Username:    identity.Username(),
		DisplayName: identity.DisplayName(),
		PictureURL:  identity.PictureURL(),
		WebsiteURL:  identity.WebsiteURL(),
		AccessToken: identity.AccessToken(),
	})
	if err != nil {
		return VerifyResult{}, err
	}
	return VerifyResult{AccountID: result.AccountID, Created: result.Created}, nil
}
