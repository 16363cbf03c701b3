package plugin

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
)

// Plugin reacts to the host's lifecycle events, one method per event.
// Methods receive the event's data value and return it, possibly extended,
// so a dispatcher can fold a value through every registered plugin.
type Plugin interface {
	// ID returns the plugin identifier (e.g. "sso-instagram").
	ID() string

	// Init mounts the plugin's routes. Called once at startup.
	Init(ctx context.Context, params InitParams) error

	// GetStrategies appends the plugin's login strategy when it is configured.
	GetStrategies(ctx context.Context, strategies []model.Strategy) ([]model.Strategy, error)

	// GetAssociations appends the account's association status.
	GetAssociations(ctx context.Context, data AssociationsData) (AssociationsData, error)

	// DeleteUserData removes the plugin's data for an account being deleted
	// and echoes the account id.
	DeleteUserData(ctx context.Context, accountID types.ID) (types.ID, error)

	// AddMenuItem contributes entries to the admin navigation.
	AddMenuItem(ctx context.Context, header AdminHeader) (AdminHeader, error)
}

// InitParams carries what the host hands to plugins at startup.
type InitParams struct {
	Router gin.IRouter
}

// AssociationsData is the value folded through GetAssociations.
type AssociationsData struct {
	AccountID    types.ID            `json:"account_id"`
	Associations []model.Association `json:"associations"`
}

// AdminHeader is the value folded through AddMenuItem.
type AdminHeader struct {
	Authentication []model.AdminMenuItem `json:"authentication"`
}
