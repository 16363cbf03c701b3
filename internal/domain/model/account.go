package model

import (
	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
)

// Account fields shared with the host application.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldEmailConfirmed  = "email:confirmed"
	FieldFullname        = "fullname"
	FieldPicture         = "picture"
	FieldUploadedPicture = "uploadedpicture"
	FieldWebsite         = "website"
)

// NotValidatedSet is the sorted set of accounts whose email awaits confirmation.
const NotValidatedSet = "users:notvalidated"

// FlagTrue is the stored representation of a boolean account field set to true.
const FlagTrue = "1"

// NewAccount is the input for creating a local account.
type NewAccount struct {
	Username string
	Email    string
}

// NewAccountForIdentity builds the creation input for a first-time external
// identity. The provider does not supply a verified email, so a placeholder
// address is synthesized from the username.
func NewAccountForIdentity(provider Provider, username string) (NewAccount, error) {
	if username == "" {
		return NewAccount{}, domainerror.ErrUsernameRequired
	}
	return NewAccount{
		Username: username,
		Email:    provider.PlaceholderEmail(username),
	}, nil
}

// MergeProfile returns the account fields to copy from the provider profile
// onto a newly created account. Absent or empty values are skipped; the
// picture populates both picture fields.
func MergeProfile(displayName, pictureURL, websiteURL types.Optional[string]) map[string]string {
	fields := make(map[string]string, 4)

	if v, ok := nonEmpty(displayName); ok {
		fields[FieldFullname] = v
	}
	if v, ok := nonEmpty(pictureURL); ok {
		fields[FieldPicture] = v
		fields[FieldUploadedPicture] = v
	}
	if v, ok := nonEmpty(websiteURL); ok {
		fields[FieldWebsite] = v
	}

	return fields
}

func nonEmpty(o types.Optional[string]) (string, bool) {
	if !o.IsPresent() {
		return "", false
	}
	v := o.MustGet()
	return v, v != ""
}
