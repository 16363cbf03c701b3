package query

import (
	"context"

	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/query"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
)

type getAssociationHandler struct {
	accounts store.AccountStore
	provider model.Provider
	siteURL  string
}

var _ query.Handler[query.GetAssociation, query.GetAssociationResult] = (*getAssociationHandler)(nil)

func NewGetAssociationHandler(
	accounts store.AccountStore,
	provider model.Provider,
	siteURL string,
) query.GetAssociationHandler {
	return &getAssociationHandler{
		accounts: accounts,
		provider: provider,
		siteURL:  siteURL,
	}
}

func (h *getAssociationHandler) Handle(ctx context.Context, qry query.GetAssociation) (query.GetAssociationResult, error) {
	if qry.AccountID.IsEmpty() {
		return query.GetAssociationResult{}, domainerror.ErrAccountIDRequired
	}

	fields, err := h.accounts.GetFields(ctx, qry.AccountID, h.provider.IDField(), h.provider.UsernameField())
	if err != nil {
		return query.GetAssociationResult{}, err
	}

	if fields[h.provider.IDField()] != "" {
		return query.GetAssociationResult{
			Association: model.NewLinkedAssociation(h.provider, fields[h.provider.UsernameField()]),
		}, nil
	}

	return query.GetAssociationResult{
		Association: model.NewUnlinkedAssociation(h.provider, h.siteURL),
	}, nil
}
