package web

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
)

// DefaultSessionHeader carries the signed-in account id, set by the host's
// session middleware in front of this service.
const DefaultSessionHeader = "X-Account-ID"

// SessionResolver extracts the caller's session from a request.
type SessionResolver func(c *gin.Context) model.Session

// HeaderSession resolves the session from a trusted request header.
// A missing or blank header, or a guest id such as 0, is an anonymous session.
func HeaderSession(header string) SessionResolver {
	if header == "" {
		header = DefaultSessionHeader
	}
	return func(c *gin.Context) model.Session {
		value := strings.TrimSpace(c.GetHeader(header))
		return model.AuthenticatedSession(types.ID(value))
	}
}
