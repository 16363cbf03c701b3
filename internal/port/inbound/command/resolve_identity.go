package command

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"
)

// ResolveIdentity maps an external identity to a local account, creating the
// account on first sight.
type ResolveIdentity struct {
	ExternalID  string
	Username    string
	DisplayName types.Optional[string]
	PictureURL  types.Optional[string]
	WebsiteURL  types.Optional[string]
	AccessToken string
}

func (c ResolveIdentity) CommandName() string {
	return "sso.resolve_identity"
}

// ResolveIdentityResult contains the resolved account and whether it was created.
type ResolveIdentityResult struct {
	AccountID types.ID
	Created   bool
}

// ResolveIdentityHandler handles the ResolveIdentity command.
type ResolveIdentityHandler interface {
	Handle(ctx context.Context, cmd ResolveIdentity) (ResolveIdentityResult, error)
}
