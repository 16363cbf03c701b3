package mocks

import (
	"context"
	"net/url"
	"sync"

	"github.com/0xsj/overwatch-sso-instagram/internal/app/service"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
)

// OAuthClient is a mock implementation of service.OAuthClient.
type OAuthClient struct {
	mu sync.Mutex

	// AuthURL is the base of URLs returned by AuthCodeURL.
	AuthURL string

	// Identity is returned by Exchange.
	Identity *model.ExternalIdentity

	// Config is the configuration the client was built with, when built by Factory.
	Config service.OAuthConfig

	States []string
	Codes  []string

	Errors struct {
		Exchange error
	}
}

// NewOAuthClient creates a new mock OAuthClient returning identity on exchange.
func NewOAuthClient(identity *model.ExternalIdentity) *OAuthClient {
	return &OAuthClient{
		AuthURL:  "https://provider.test/oauth/authorize",
		Identity: identity,
	}
}

func (m *OAuthClient) AuthCodeURL(state string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.States = append(m.States, state)
	return m.AuthURL + "?state=" + url.QueryEscape(state)
}

func (m *OAuthClient) Exchange(ctx context.Context, code string) (*model.ExternalIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Codes = append(m.Codes, code)

	if m.Errors.Exchange != nil {
		return nil, m.Errors.Exchange
	}
	return m.Identity, nil
}

// Factory returns a service.ClientFactory that records the configuration and
// hands out this client.
func (m *OAuthClient) Factory() service.ClientFactory {
	return func(cfg service.OAuthConfig) service.OAuthClient {
		m.mu.Lock()
		m.Config = cfg
		m.mu.Unlock()
		return m
	}
}

var _ service.OAuthClient = (*OAuthClient)(nil)
