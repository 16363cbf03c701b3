// Package instagram is the Instagram single sign-on plugin. It binds the
// identity handlers to the host's lifecycle events.
package instagram

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-sso-instagram/internal/adapter/inbound/web"
	"github.com/0xsj/overwatch-sso-instagram/internal/app/service"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/command"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/plugin"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/query"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/logging"
)

// Config holds the plugin's HTTP settings.
type Config struct {
	SiteURL       string
	SessionHeader string
	SecureCookie  bool
}

// Plugin implements plugin.Plugin for Instagram.
type Plugin struct {
	provider    model.Provider
	strategies  service.StrategyService
	unlink      command.UnlinkIdentityHandler
	association query.GetAssociationHandler
	config      Config
	logger      logging.Logger
}

var _ plugin.Plugin = (*Plugin)(nil)

// New creates the Instagram plugin.
func New(
	provider model.Provider,
	strategies service.StrategyService,
	unlink command.UnlinkIdentityHandler,
	association query.GetAssociationHandler,
	config Config,
	logger logging.Logger,
) *Plugin {
	return &Plugin{
		provider:    provider,
		strategies:  strategies,
		unlink:      unlink,
		association: association,
		config:      config,
		logger:      logger,
	}
}

func (p *Plugin) ID() string {
	return p.provider.PluginID()
}

// Init mounts the login and admin routes.
func (p *Plugin) Init(ctx context.Context, params plugin.InitParams) error {
	web.NewAuthHandler(
		p.strategies,
		web.HeaderSession(p.config.SessionHeader),
		p.provider,
		web.AuthConfig{SiteURL: p.config.SiteURL, SecureCookie: p.config.SecureCookie},
		p.logger,
	).RegisterRoutes(params.Router)

	web.NewAdminHandler(p.strategies, p.provider, p.config.SiteURL, p.logger).RegisterRoutes(params.Router)

	return nil
}

// GetStrategies appends the login strategy when credentials are configured.
func (p *Plugin) GetStrategies(ctx context.Context, strategies []model.Strategy) ([]model.Strategy, error) {
	strategy := p.strategies.Active(ctx)
	if strategy == nil {
		return strategies, nil
	}
	return append(strategies, strategy.Descriptor()), nil
}

func (p *Plugin) GetAssociations(ctx context.Context, data plugin.AssociationsData) (plugin.AssociationsData, error) {
	result, err := p.association.Handle(ctx, query.GetAssociation{AccountID: data.AccountID})
	if err != nil {
		return data, err
	}
	data.Associations = append(data.Associations, result.Association)
	return data, nil
}

func (p *Plugin) DeleteUserData(ctx context.Context, accountID types.ID) (types.ID, error) {
	result, err := p.unlink.Handle(ctx, command.UnlinkIdentity{AccountID: accountID})
	if err != nil {
		return accountID, err
	}
	return result.AccountID, nil
}

func (p *Plugin) AddMenuItem(ctx context.Context, header plugin.AdminHeader) (plugin.AdminHeader, error) {
	header.Authentication = append(header.Authentication, model.NewAdminMenuItem(p.provider))
	return header, nil
}
