package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/inbound/plugin"
)

// Hooks is the subset of the hook dispatcher the host routes need.
type Hooks interface {
	FireStrategies(ctx context.Context) ([]model.Strategy, error)
	FireAssociations(ctx context.Context, accountID types.ID) ([]model.Association, error)
	FireMenu(ctx context.Context) (plugin.AdminHeader, error)
}

// HostHandler exposes the aggregated plugin hooks over HTTP.
type HostHandler struct {
	hooks Hooks
}

func NewHostHandler(hooks Hooks) *HostHandler {
	return &HostHandler{hooks: hooks}
}

func (h *HostHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.health)
	r.GET("/api/strategies", h.strategies)
	r.GET("/api/user/:id/associations", h.associations)
	r.GET("/api/admin/menu", h.menu)
}

func (h *HostHandler) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *HostHandler) strategies(c *gin.Context) {
	strategies, err := h.hooks.FireStrategies(c.Request.Context())
	if err != nil {
		status, code := statusFor(err)
		respondError(c, status, code, err)
		return
	}
	respondOK(c, gin.H{"strategies": strategies})
}

func (h *HostHandler) associations(c *gin.Context) {
	accountID := types.ID(strings.TrimSpace(c.Param("id")))
	if accountID.IsEmpty() {
		respondError(c, http.StatusBadRequest, string(domainerror.CodeAccountIDRequired), domainerror.ErrAccountIDRequired)
		return
	}

	associations, err := h.hooks.FireAssociations(c.Request.Context(), accountID)
	if err != nil {
		status, code := statusFor(err)
		respondError(c, status, code, err)
		return
	}
	respondOK(c, gin.H{"associations": associations})
}

func (h *HostHandler) menu(c *gin.Context) {
	header, err := h.hooks.FireMenu(c.Request.Context())
	if err != nil {
		status, code := statusFor(err)
		respondError(c, status, code, err)
		return
	}
	respondOK(c, header)
}
