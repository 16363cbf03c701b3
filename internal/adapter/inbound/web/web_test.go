package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/0xsj/overwatch-sso-instagram/internal/adapter/inbound/web"
	appcommand "github.com/0xsj/overwatch-sso-instagram/internal/app/command"
	"github.com/0xsj/overwatch-sso-instagram/internal/app/service"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/testutil"
	"github.com/0xsj/overwatch-sso-instagram/internal/testutil/mocks"
)

const siteURL = "https://forum.example.com"

func init() {
	gin.SetMode(gin.TestMode)
}

type webEnv struct {
	provider   model.Provider
	settings   *mocks.SettingsStore
	accounts   *mocks.AccountStore
	objects    *mocks.ObjectStore
	client     *mocks.OAuthClient
	logger     *mocks.Logger
	strategies service.StrategyService
	router     *gin.Engine
}

func newWebEnv(t *testing.T, configured bool) *webEnv {
	t.Helper()

	env := &webEnv{
		provider: model.InstagramProvider(),
		settings: mocks.NewSettingsStore(),
		accounts: mocks.NewAccountStore(),
		objects:  mocks.NewObjectStore(),
		client: mocks.NewOAuthClient(
			testutil.Fixtures.IdentityBuilder().WithID("42").WithUsername("alice").Build(),
		),
		logger: mocks.NewLogger(),
	}
	if configured {
		env.settings.Seed(env.provider.SettingsKey(), map[string]string{
			service.SettingClientID:     "client-id",
			service.SettingClientSecret: "client-secret",
		})
	}

	publisher := mocks.NewEventPublisher()
	refresh := appcommand.NewRefreshExternalInfoHandler(env.accounts, env.provider, appcommand.RefreshConfig{}, env.logger)
	resolve := appcommand.NewResolveIdentityHandler(env.accounts, env.objects, refresh, publisher, env.provider, env.logger)
	link := appcommand.NewLinkIdentityHandler(env.accounts, env.objects, refresh, publisher, env.provider, env.logger)

	env.strategies = service.NewStrategyService(
		env.settings, link, resolve, env.client.Factory(), env.provider,
		service.StrategyConfig{SiteURL: siteURL},
		env.logger,
	)

	env.router = gin.New()
	web.NewAuthHandler(
		env.strategies,
		web.HeaderSession(""),
		env.provider,
		web.AuthConfig{SiteURL: siteURL},
		env.logger,
	).RegisterRoutes(env.router)
	web.NewAdminHandler(env.strategies, env.provider, siteURL, env.logger).RegisterRoutes(env.router)

	return env
}

func (e *webEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
