package query

import (
	"context"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
)

// GetAssociation reports whether an account is linked to the provider.
type GetAssociation struct {
	AccountID types.ID
}

func (q GetAssociation) QueryName() string {
	return "sso.get_association"
}

// GetAssociationResult contains the association status.
type GetAssociationResult struct {
	Association model.Association
}

// GetAssociationHandler handles the GetAssociation query.
type GetAssociationHandler interface {
	Handle(ctx context.Context, qry GetAssociation) (GetAssociationResult, error)
}
