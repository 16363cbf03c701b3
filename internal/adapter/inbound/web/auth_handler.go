package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0xsj/overwatch-sso-instagram/internal/app/service"
	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/logging"
)

// AuthConfig holds configuration for the login routes.
type AuthConfig struct {
	SiteURL      string
	SecureCookie bool
}

// AuthHandler serves the login-initiation and callback routes of a provider.
type AuthHandler struct {
	strategies service.StrategyService
	session    SessionResolver
	provider   model.Provider
	config     AuthConfig
	logger     logging.Logger
}

func NewAuthHandler(
	strategies service.StrategyService,
	session SessionResolver,
	provider model.Provider,
	config AuthConfig,
	logger logging.Logger,
) *AuthHandler {
	return &AuthHandler{
		strategies: strategies,
		session:    session,
		provider:   provider,
		config:     config,
		logger:     logger,
	}
}

func (h *AuthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET(h.provider.LoginPath(), h.login)
	r.GET(h.provider.CallbackPath(), h.callback)
}

func (h *AuthHandler) login(c *gin.Context) {
	strategy := h.strategies.Active(c.Request.Context())
	if strategy == nil {
		respondError(c, http.StatusNotFound, string(domainerror.CodeStrategyDisabled), domainerror.ErrStrategyDisabled)
		return
	}

	state, err := generateState(c, h.config.SecureCookie)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", err)
		return
	}

	c.Redirect(http.StatusFound, strategy.Client().AuthCodeURL(state))
}

// callback completes the handshake. Every failure renders the same login
// error page; the cause is only logged.
func (h *AuthHandler) callback(c *gin.Context) {
	ctx := c.Request.Context()

	strategy := h.strategies.Active(ctx)
	if strategy == nil {
		respondError(c, http.StatusNotFound, string(domainerror.CodeStrategyDisabled), domainerror.ErrStrategyDisabled)
		return
	}

	if !validateState(c) {
		h.loginFailed(c, domainerror.ErrOAuthStateInvalid)
		return
	}
	clearState(c, h.config.SecureCookie)

	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warn("oauth callback returned error",
			"provider", h.provider.Key(),
			"error", errParam,
			"desc", c.Query("error_description"),
		)
		h.loginFailed(c, domainerror.ErrOAuthDenied)
		return
	}

	identity, err := strategy.Client().Exchange(ctx, c.Query("code"))
	if err != nil {
		h.loginFailed(c, err)
		return
	}

	result, err := strategy.Verify(ctx, h.session(c), identity)
	if err != nil {
		h.loginFailed(c, err)
		return
	}

	h.logger.Info("oauth login succeeded",
		"provider", h.provider.Key(),
		"account_id", result.AccountID.String(),
		"linked", result.Linked,
		"created", result.Created,
		"ip", c.ClientIP(),
	)

	respondOK(c, result)
}

func (h *AuthHandler) loginFailed(c *gin.Context, err error) {
	h.logger.Warn("oauth login failed",
		"provider", h.provider.Key(),
		"ip", c.ClientIP(),
		"error", err,
	)

	c.Status(http.StatusUnauthorized)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = templates.ExecuteTemplate(c.Writer, "login_error.html", loginErrorView{
		ProviderName: h.provider.Name(),
		LoginURL:     h.provider.LoginURL(h.config.SiteURL),
	})
}
