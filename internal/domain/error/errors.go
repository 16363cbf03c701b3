package error

import (
	"github.com/0xsj/overwatch-pkg/errors"
)

// Domain error codes
const (
	// Account errors
	CodeAccountIDRequired   errors.Code = "ACCOUNT_ID_REQUIRED"
	CodeAccountNotFound     errors.Code = "ACCOUNT_NOT_FOUND"
	CodeUsernameRequired    errors.Code = "USERNAME_REQUIRED"
	CodeUsernameUnavailable errors.Code = "USERNAME_UNAVAILABLE"

	// External identity errors
	CodeExternalIDRequired  errors.Code = "EXTERNAL_ID_REQUIRED"
	CodeAccessTokenRequired errors.Code = "ACCESS_TOKEN_REQUIRED"

	// OAuth errors
	CodeOAuthStateInvalid       errors.Code = "OAUTH_STATE_INVALID"
	CodeOAuthCodeRequired       errors.Code = "OAUTH_CODE_REQUIRED"
	CodeOAuthCodeExchangeFailed errors.Code = "OAUTH_CODE_EXCHANGE_FAILED"
	CodeOAuthProfileFailed      errors.Code = "OAUTH_PROFILE_FAILED"
	CodeOAuthDenied             errors.Code = "OAUTH_DENIED"

	// Strategy errors
	CodeStrategyDisabled errors.Code = "STRATEGY_DISABLED"
)

// Account errors
var (
	ErrAccountIDRequired = errors.New(errors.KindValidation, CodeAccountIDRequired, "account ID is required")

	ErrAccountNotFound = errors.New(errors.KindNotFound, CodeAccountNotFound, "account not found")

	ErrUsernameRequired = errors.New(errors.KindValidation, CodeUsernameRequired, "username is required")

	ErrUsernameUnavailable = errors.New(errors.KindConflict, CodeUsernameUnavailable, "no free username could be derived")
)

// External identity errors
var (
	ErrExternalIDRequired = errors.New(errors.KindValidation, CodeExternalIDRequired, "external identity ID is required")

	ErrAccessTokenRequired = errors.New(errors.KindValidation, CodeAccessTokenRequired, "access token is required")
)

// OAuth errors
var (
	ErrOAuthStateInvalid = errors.New(errors.KindUnauthorized, CodeOAuthStateInvalid, "oauth state is missing or does not match")

	ErrOAuthCodeRequired = errors.New(errors.KindValidation, CodeOAuthCodeRequired, "authorization code is required")

	ErrOAuthCodeExchangeFailed = errors.New(errors.KindUnauthorized, CodeOAuthCodeExchangeFailed, "failed to exchange authorization code")

	ErrOAuthProfileFailed = errors.New(errors.KindUnauthorized, CodeOAuthProfileFailed, "failed to fetch provider profile")

	ErrOAuthDenied = errors.New(errors.KindUnauthorized, CodeOAuthDenied, "provider denied the authorization request")
)

// Strategy errors
var (
	ErrStrategyDisabled = errors.New(errors.KindNotFound, CodeStrategyDisabled, "login strategy is not configured")
)
