package command

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"
)

// UnlinkIdentity removes the external identity link of an account being deleted.
type UnlinkIdentity struct {
	AccountID types.ID
}

func (c UnlinkIdentity) CommandName() string {
	return "sso.unlink_identity"
}

// UnlinkIdentityResult echoes the account id for chaining.
type UnlinkIdentityResult struct {
	AccountID types.ID
}

// UnlinkIdentityHandler handles the UnlinkIdentity command.
type UnlinkIdentityHandler interface {
	Handle(ctx context.Context, cmd UnlinkIdentity) (UnlinkIdentityResult, error)
}
