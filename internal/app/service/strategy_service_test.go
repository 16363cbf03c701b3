package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/0xsj/overwatch-pkg/types"

	appcommand "github.com/0xsj/overwatch-sso-instagram/internal/app/command"
	"github.com/0xsj/overwatch-sso-instagram/internal/app/service"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/testutil"
	"github.com/0xsj/overwatch-sso-instagram/internal/testutil/mocks"
)

type strategyEnv struct {
	settings *mocks.SettingsStore
	accounts *mocks.AccountStore
	objects  *mocks.ObjectStore
	client   *mocks.OAuthClient
	logger   *mocks.Logger
	service  service.StrategyService
}

func newStrategyEnv(t *testing.T, fallback service.Credentials) *strategyEnv {
	t.Helper()

	provider := model.InstagramProvider()
	env := &strategyEnv{
		settings: mocks.NewSettingsStore(),
		accounts: mocks.NewAccountStore(),
		objects:  mocks.NewObjectStore(),
		client:   mocks.NewOAuthClient(testutil.Fixtures.Identity()),
		logger:   mocks.NewLogger(),
	}
	publisher := mocks.NewEventPublisher()

	refresh := appcommand.NewRefreshExternalInfoHandler(env.accounts, provider, appcommand.RefreshConfig{}, env.logger)
	resolve := appcommand.NewResolveIdentityHandler(env.accounts, env.objects, refresh, publisher, provider, env.logger)
	link := appcommand.NewLinkIdentityHandler(env.accounts, env.objects, refresh, publisher, provider, env.logger)

	env.service = service.NewStrategyService(
		env.settings,
		link,
		resolve,
		env.client.Factory(),
		provider,
		service.StrategyConfig{SiteURL: "https://forum.example.com", Fallback: fallback},
		env.logger,
	)
	return env
}

func TestStrategyService_Active(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without credentials", func(t *testing.T) {
		env := newStrategyEnv(t, service.Credentials{})

		if s := env.service.Active(ctx); s != nil {
			t.Errorf("Active() = %+v, want nil", s)
		}
	})

	t.Run("disabled with only client id", func(t *testing.T) {
		env := newStrategyEnv(t, service.Credentials{})
		env.settings.Seed("sso-instagram", map[string]string{"id": "abc"})

		if s := env.service.Active(ctx); s != nil {
			t.Error("Active() should be nil without a secret")
		}
	})

	t.Run("enabled from settings", func(t *testing.T) {
		env := newStrategyEnv(t, service.Credentials{})
		env.settings.Seed("sso-instagram", map[string]string{"id": "abc", "secret": "xyz"})

		s := env.service.Active(ctx)

		if s == nil {
			t.Fatal("Active() = nil, want strategy")
		}
		d := s.Descriptor()
		if d.Name != "instagram" || d.URL != "/auth/instagram" || d.CallbackURL != "/auth/instagram/callback" {
			t.Errorf("descriptor = %+v", d)
		}
		cfg := env.client.Config
		if cfg.ClientID != "abc" || cfg.ClientSecret != "xyz" {
			t.Errorf("client credentials = %q/%q", cfg.ClientID, cfg.ClientSecret)
		}
		if cfg.RedirectURL != "https://forum.example.com/auth/instagram/callback" {
			t.Errorf("RedirectURL = %q", cfg.RedirectURL)
		}
	})

	t.Run("fallback credentials", func(t *testing.T) {
		env := newStrategyEnv(t, service.Credentials{ClientID: "env-id", ClientSecret: "env-secret"})
		env.settings.Seed("sso-instagram", map[string]string{"id": "stored-id"})

		if s := env.service.Active(ctx); s == nil {
			t.Fatal("Active() = nil, want strategy")
		}
		if env.client.Config.ClientID != "stored-id" {
			t.Errorf("ClientID = %q, stored value should win", env.client.Config.ClientID)
		}
		if env.client.Config.ClientSecret != "env-secret" {
			t.Errorf("ClientSecret = %q, want fallback", env.client.Config.ClientSecret)
		}
	})

	t.Run("settings failure disables", func(t *testing.T) {
		env := newStrategyEnv(t, service.Credentials{ClientID: "env-id", ClientSecret: "env-secret"})
		env.settings.Errors.Get = errors.New("settings unavailable")

		if s := env.service.Active(ctx); s != nil {
			t.Error("Active() should be nil when settings cannot be read")
		}
		if len(env.logger.Entries("warn")) != 1 {
			t.Errorf("warn entries = %d, want 1", len(env.logger.Entries("warn")))
		}
	})
}

func TestStrategyService_SaveCredentials(t *testing.T) {
	ctx := context.Background()
	env := newStrategyEnv(t, service.Credentials{})

	if err := env.service.SaveCredentials(ctx, service.Credentials{ClientID: "abc", ClientSecret: "xyz"}); err != nil {
		t.Fatalf("SaveCredentials() error = %v", err)
	}

	creds, err := env.service.Credentials(ctx)
	if err != nil {
		t.Fatalf("Credentials() error = %v", err)
	}
	if creds.ClientID != "abc" || creds.ClientSecret != "xyz" {
		t.Errorf("Credentials() = %+v", creds)
	}
	if !creds.Complete() {
		t.Error("Complete() should be true")
	}
}

func TestStrategy_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous session resolves", func(t *testing.T) {
		env := newStrategyEnv(t, service.Credentials{ClientID: "a", ClientSecret: "b"})
		identity := testutil.Fixtures.IdentityBuilder().WithID("42").WithUsername("alice").Build()

		result, err := env.service.Active(ctx).Verify(ctx, model.AnonymousSession(), identity)

		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if !result.Created || result.Linked {
			t.Errorf("result = %+v, want created", result)
		}
		if mapped, _ := env.objects.Field("instagramId:uid", "42"); types.ID(mapped) != result.AccountID {
			t.Errorf("mapping = %q, want %q", mapped, result.AccountID)
		}
	})

	t.Run("signed-in session links", func(t *testing.T) {
		env := newStrategyEnv(t, service.Credentials{ClientID: "a", ClientSecret: "b"})
		identity := testutil.Fixtures.IdentityBuilder().WithID("42").Build()

		result, err := env.service.Active(ctx).Verify(ctx, model.AuthenticatedSession(types.ID("7")), identity)

		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if !result.Linked || result.Created {
			t.Errorf("result = %+v, want linked", result)
		}
		if result.AccountID != types.ID("7") {
			t.Errorf("AccountID = %v, want 7", result.AccountID)
		}
		if env.accounts.Calls.Create != 0 {
			t.Error("linking must not create an account")
		}
		if env.accounts.Fields(types.ID("7"))["instagramId"] != "42" {
			t.Error("instagramId should be stored on account 7")
		}
	})

	t.Run("resolution failure propagated", func(t *testing.T) {
		env := newStrategyEnv(t, service.Credentials{ClientID: "a", ClientSecret: "b"})
		lookupErr := errors.New("store unavailable")
		env.objects.Errors.GetObjectField = lookupErr

		_, err := env.service.Active(ctx).Verify(ctx, model.AnonymousSession(), testutil.Fixtures.Identity())

		if err != lookupErr {
			t.Errorf("error = %v, want %v", err, lookupErr)
		}
	})
}
