package command

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"
)

// LinkIdentity connects an external identity to an account the caller is
// already signed in to. No lookup is made; the live session is trusted.
type LinkIdentity struct {
	AccountID   types.ID
	ExternalID  string
	Username    string
	AccessToken string
}

func (c LinkIdentity) CommandName() string {
	return "sso.link_identity"
}

// LinkIdentityResult echoes the linked account.
type LinkIdentityResult struct {
	AccountID types.ID
}

// LinkIdentityHandler handles the LinkIdentity command.
type LinkIdentityHandler interface {
	Handle(ctx context.Context, cmd LinkIdentity) (LinkIdentityResult, error)
}
