package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0xsj/overwatch-sso-instagram/internal/app/service"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/logging"
)

const secretMask = "********"

type settingsResponse struct {
	ID         string `json:"id"`
	Secret     string `json:"secret"`
	Configured bool   `json:"configured"`
}

type settingsRequest struct {
	ID     string `json:"id" binding:"required"`
	Secret string `json:"secret"`
}

// AdminHandler serves the provider's admin page and settings API.
type AdminHandler struct {
	strategies service.StrategyService
	provider   model.Provider
	siteURL    string
	logger     logging.Logger
}

func NewAdminHandler(
	strategies service.StrategyService,
	provider model.Provider,
	siteURL string,
	logger logging.Logger,
) *AdminHandler {
	return &AdminHandler{
		strategies: strategies,
		provider:   provider,
		siteURL:    siteURL,
		logger:     logger,
	}
}

func (h *AdminHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/admin"+h.provider.AdminRoute(), h.page)
	r.GET(h.settingsPath(), h.getSettings)
	r.PUT(h.settingsPath(), h.putSettings)
}

func (h *AdminHandler) settingsPath() string {
	return "/api/admin" + h.provider.AdminRoute()
}

func (h *AdminHandler) page(c *gin.Context) {
	creds, err := h.strategies.Credentials(c.Request.Context())
	if err != nil {
		status, code := statusFor(err)
		respondError(c, status, code, err)
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(c.Writer, "admin.html", adminView{
		ProviderName: h.provider.Name(),
		Icon:         h.provider.Icon(),
		CallbackURL:  h.provider.CallbackURL(h.siteURL),
		ClientID:     creds.ClientID,
		HasSecret:    creds.ClientSecret != "",
		SettingsURL:  h.settingsPath(),
	}); err != nil {
		h.logger.Error("failed to render admin page", "error", err)
	}
}

func (h *AdminHandler) getSettings(c *gin.Context) {
	creds, err := h.strategies.Credentials(c.Request.Context())
	if err != nil {
		status, code := statusFor(err)
		respondError(c, status, code, err)
		return
	}
	respondOK(c, toSettingsResponse(creds))
}

// putSettings stores new credentials. An empty or masked secret keeps the
// current one.
func (h *AdminHandler) putSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	ctx := c.Request.Context()
	creds := service.Credentials{ClientID: req.ID, ClientSecret: req.Secret}

	if creds.ClientSecret == "" || creds.ClientSecret == secretMask {
		current, err := h.strategies.Credentials(ctx)
		if err != nil {
			status, code := statusFor(err)
			respondError(c, status, code, err)
			return
		}
		creds.ClientSecret = current.ClientSecret
	}

	if err := h.strategies.SaveCredentials(ctx, creds); err != nil {
		status, code := statusFor(err)
		respondError(c, status, code, err)
		return
	}

	h.logger.Info("provider settings updated", "provider", h.provider.Key())
	respondOK(c, toSettingsResponse(creds))
}

func toSettingsResponse(creds service.Credentials) settingsResponse {
	resp := settingsResponse{
		ID:         creds.ClientID,
		Configured: creds.Complete(),
	}
	if creds.ClientSecret != "" {
		resp.Secret = secretMask
	}
	return resp
}
