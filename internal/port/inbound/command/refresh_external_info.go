package command

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"
)

// RefreshExternalInfo stores the latest access token and username on an account.
type RefreshExternalInfo struct {
	AccountID   types.ID
	AccessToken string
	Username    string
}

func (c RefreshExternalInfo) CommandName() string {
	return "sso.refresh_external_info"
}

// RefreshExternalInfoResult is empty on success.
type RefreshExternalInfoResult struct{}

// RefreshExternalInfoHandler handles the RefreshExternalInfo command.
type RefreshExternalInfoHandler interface {
	Handle(ctx context.Context, cmd RefreshExternalInfo) (RefreshExternalInfoResult, error)
}
