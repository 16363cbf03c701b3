package model

import (
	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
)

// ExternalIdentity is the verified profile and credentials returned by the
// provider after a successful OAuth handshake. The ID is the stable key;
// every other field may change between logins.
type ExternalIdentity struct {
	id          string
	username    string
	displayName types.Optional[string]
	pictureURL  types.Optional[string]
	websiteURL  types.Optional[string]
	accessToken string
}

// NewExternalIdentity creates an ExternalIdentity. Empty optional values are
// stored as absent.
func NewExternalIdentity(
	id string,
	username string,
	displayName string,
	pictureURL string,
	websiteURL string,
	accessToken string,
) (*ExternalIdentity, error) {
	if id == "" {
		return nil, domainerror.ErrExternalIDRequired
	}
	if username == "" {
		return nil, domainerror.ErrUsernameRequired
	}
	if accessToken == "" {
		return nil, domainerror.ErrAccessTokenRequired
	}

	return &ExternalIdentity{
		id:          id,
		username:    username,
		displayName: OptionalString(displayName),
		pictureURL:  OptionalString(pictureURL),
		websiteURL:  OptionalString(websiteURL),
		accessToken: accessToken,
	}, nil
}

// Getters

func (e *ExternalIdentity) ID() string                         { return e.id }
func (e *ExternalIdentity) Username() string                   { return e.username }
func (e *ExternalIdentity) DisplayName() types.Optional[string] { return e.displayName }
func (e *ExternalIdentity) PictureURL() types.Optional[string]  { return e.pictureURL }
func (e *ExternalIdentity) WebsiteURL() types.Optional[string]  { return e.websiteURL }
func (e *ExternalIdentity) AccessToken() string                { return e.accessToken }

// OptionalString maps the empty string to None.
func OptionalString(s string) types.Optional[string] {
	if s == "" {
		return types.None[string]()
	}
	return types.Some(s)
}
