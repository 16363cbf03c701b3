package command_test

import (
	"testing"

	appcommand "github.com/0xsj/overwatch-sso-instagram/internal/app/command"
	"github.com/0xsj/overwatch-sso-instagram/internal/app/query"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/command"
	portquery "github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/query"
	"github.com/0xsj/overwatch-sso-instagram/internal/testutil/mocks"
)

const siteURL = "https://forum.example.com"

type testEnv struct {
	provider  model.Provider
	accounts  *mocks.AccountStore
	objects   *mocks.ObjectStore
	publisher *mocks.EventPublisher
	logger    *mocks.Logger

	refresh     command.RefreshExternalInfoHandler
	resolve     command.ResolveIdentityHandler
	link        command.LinkIdentityHandler
	unlink      command.UnlinkIdentityHandler
	association portquery.GetAssociationHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		provider:  model.InstagramProvider(),
		accounts:  mocks.NewAccountStore(),
		objects:   mocks.NewObjectStore(),
		publisher: mocks.NewEventPublisher(),
		logger:    mocks.NewLogger(),
	}

	env.refresh = appcommand.NewRefreshExternalInfoHandler(env.accounts, env.provider, appcommand.RefreshConfig{}, env.logger)
	env.resolve = appcommand.NewResolveIdentityHandler(env.accounts, env.objects, env.refresh, env.publisher, env.provider, env.logger)
	env.link = appcommand.NewLinkIdentityHandler(env.accounts, env.objects, env.refresh, env.publisher, env.provider, env.logger)
	env.unlink = appcommand.NewUnlinkIdentityHandler(env.accounts, env.objects, env.publisher, env.provider, env.logger)
	env.association = query.NewGetAssociationHandler(env.accounts, env.provider, siteURL)

	return env
}

func resolveCommand(identity *model.ExternalIdentity) command.ResolveIdentity {
	return command.ResolveIdentity{
		ExternalID:  identity.ID(),
		Username:    identity.Username(),
		DisplayName: identity.DisplayName(),
		PictureURL:  identity.PictureURL(),
		WebsiteURL:  identity.WebsiteURL(),
		AccessToken: identity.AccessToken(),
	}
}

func assertNoProfileFields(t *testing.T, fields map[string]string) {
	t.Helper()
	for _, f := range []string{model.FieldFullname, model.FieldPicture, model.FieldUploadedPicture, model.FieldWebsite} {
		if v, ok := fields[f]; ok {
			t.Errorf("%s should not be set, got %q", f, v)
		}
	}
}
