// Package hooks fans host lifecycle events out to registered plugins.
package hooks

import (
	"context"
	"fmt"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/plugin"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/logging"
)

// Dispatcher folds hook data through every plugin in registration order.
// The first plugin error stops the fold and is returned with the plugin id.
type Dispatcher struct {
	plugins []plugin.Plugin
	logger  logging.Logger
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(logger logging.Logger, plugins ...plugin.Plugin) *Dispatcher {
	return &Dispatcher{
		plugins: plugins,
		logger:  logger,
	}
}

// Register appends a plugin.
func (d *Dispatcher) Register(p plugin.Plugin) {
	d.plugins = append(d.plugins, p)
}

// Plugins returns the registered plugins.
func (d *Dispatcher) Plugins() []plugin.Plugin {
	return d.plugins
}

func (d *Dispatcher) FireInit(ctx context.Context, params plugin.InitParams) error {
	for _, p := range d.plugins {
		if err := p.Init(ctx, params); err != nil {
			return d.failed(p, "init", err)
		}
		d.logger.Info("plugin initialized", "plugin", p.ID())
	}
	return nil
}

func (d *Dispatcher) FireStrategies(ctx context.Context) ([]model.Strategy, error) {
	strategies := []model.Strategy{}
	for _, p := range d.plugins {
		next, err := p.GetStrategies(ctx, strategies)
		if err != nil {
			return nil, d.failed(p, "get_strategies", err)
		}
		strategies = next
	}
	return strategies, nil
}

func (d *Dispatcher) FireAssociations(ctx context.Context, accountID types.ID) ([]model.Association, error) {
	data := plugin.AssociationsData{
		AccountID:    accountID,
		Associations: []model.Association{},
	}
	for _, p := range d.plugins {
		next, err := p.GetAssociations(ctx, data)
		if err != nil {
			return nil, d.failed(p, "get_associations", err)
		}
		data = next
	}
	return data.Associations, nil
}

// FireDeleteUser runs every plugin's teardown. All plugins are attempted;
// the first error is returned.
func (d *Dispatcher) FireDeleteUser(ctx context.Context, accountID types.ID) error {
	var first error
	for _, p := range d.plugins {
		if _, err := p.DeleteUserData(ctx, accountID); err != nil && first == nil {
			first = d.failed(p, "delete_user", err)
		}
	}
	return first
}

func (d *Dispatcher) FireMenu(ctx context.Context) (plugin.AdminHeader, error) {
	header := plugin.AdminHeader{Authentication: []model.AdminMenuItem{}}
	for _, p := range d.plugins {
		next, err := p.AddMenuItem(ctx, header)
		if err != nil {
			return plugin.AdminHeader{}, d.failed(p, "add_menu_item", err)
		}
		header = next
	}
	return header, nil
}

func (d *Dispatcher) failed(p plugin.Plugin, hook string, err error) error {
	d.logger.Error("plugin hook failed",
		"plugin", p.ID(),
		"hook", hook,
		"error", err,
	)
	return fmt.Errorf("plugin %s: %s: %w", p.ID(), hook, err)
}
