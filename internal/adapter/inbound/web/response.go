package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/store"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// statusFor maps application errors onto HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domainerror.ErrAccountIDRequired):
		return http.StatusBadRequest, string(domainerror.CodeAccountIDRequired)
	case errors.Is(err, domainerror.ErrAccountNotFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, string(domainerror.CodeAccountNotFound)
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
