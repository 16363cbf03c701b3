// Package testutil provides testing utilities for the SSO service.
package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
)

// Fixtures provides builders for domain models in tests.
var Fixtures = &fixtures{}

type fixtures struct {
	counter atomic.Int64
}

// Token generates a random access token.
func (f *fixtures) Token() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Identity creates an ExternalIdentity with a unique id and username and no
// optional profile fields.
func (f *fixtures) Identity() *model.ExternalIdentity {
	return f.IdentityBuilder().Build()
}

// IdentityBuilder returns a builder for customizing ExternalIdentity creation.
func (f *fixtures) IdentityBuilder() *IdentityBuilder {
	n := f.counter.Add(1)
	return &IdentityBuilder{
		id:          fmt.Sprintf("%d", 9000+n),
		username:    fmt.Sprintf("user%d", n),
		accessToken: f.Token(),
	}
}

type IdentityBuilder struct {
	id          string
	username    string
	displayName string
	pictureURL  string
	websiteURL  string
	accessToken string
}

func (b *IdentityBuilder) WithID(id string) *IdentityBuilder {
	b.id = id
	return b
}

func (b *IdentityBuilder) WithUsername(username string) *IdentityBuilder {
	b.username = username
	return b
}

func (b *IdentityBuilder) WithProfile(displayName, pictureURL, websiteURL string) *IdentityBuilder {
	b.displayName = displayName
	b.pictureURL = pictureURL
	b.websiteURL = websiteURL
	return b
}

func (b *IdentityBuilder) WithAccessToken(token string) *IdentityBuilder {
	b.accessToken = token
	return b
}

func (b *IdentityBuilder) Build() *model.ExternalIdentity {
	identity, err := model.NewExternalIdentity(
		b.id,
		b.username,
		b.displayName,
		b.pictureURL,
		b.websiteURL,
		b.accessToken,
	)
	if err != nil {
		panic("fixtures: failed to create identity: " + err.Error())
	}
	return identity
}
