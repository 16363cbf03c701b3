package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
)

// OAuthClient performs the provider handshake and yields a verified identity.
type OAuthClient interface {
	// AuthCodeURL returns the provider authorization URL for the given CSRF state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for an access token and the
	// profile of the user who granted it.
	Exchange(ctx context.Context, code string) (*model.ExternalIdentity, error)
}

// OAuthConfig holds configuration for the Instagram OAuth client.
// Endpoint URLs default to Instagram's and are overridable for tests.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	AuthURL    string
	TokenURL   string
	ProfileURL string

	HTTPClient *http.Client
}

const (
	instagramAuthURL    = "https://api.instagram.com/oauth/authorize"
	instagramTokenURL   = "https://api.instagram.com/oauth/access_token"
	instagramProfileURL = "https://api.instagram.com/v1/users/self/"

	defaultHTTPTimeout = 10 * time.Second
)

// instagramClient implements OAuthClient using golang.org/x/oauth2.
type instagramClient struct {
	oauth      *oauth2.Config
	profileURL string
	client     *http.Client
}

// NewInstagramClient creates a new OAuthClient for Instagram.
func NewInstagramClient(cfg OAuthConfig) OAuthClient {
	authURL := firstNonEmpty(cfg.AuthURL, instagramAuthURL)
	tokenURL := firstNonEmpty(cfg.TokenURL, instagramTokenURL)

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &instagramClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			// No scopes: only the basic profile is requested.
			Scopes: nil,
		},
		profileURL: firstNonEmpty(cfg.ProfileURL, instagramProfileURL),
		client:     client,
	}
}

func (c *instagramClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

func (c *instagramClient) Exchange(ctx context.Context, code string) (*model.ExternalIdentity, error) {
	if code == "" {
		return nil, domainerror.ErrOAuthCodeRequired
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)

	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrOAuthCodeExchangeFailed, err)
	}

	profile, err := c.fetchProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrOAuthProfileFailed, err)
	}

	return model.NewExternalIdentity(
		profile.ID,
		profile.Username,
		profile.FullName,
		profile.ProfilePicture,
		profile.Website,
		token.AccessToken,
	)
}

type instagramProfile struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture"`
	Website        string `json:"website"`
}

func (c *instagramClient) fetchProfile(ctx context.Context, accessToken string) (*instagramProfile, error) {
	profileURL, err := url.Parse(c.profileURL)
	if err != nil {
		return nil, fmt.Errorf("invalid profile url: %w", err)
	}
	params := profileURL.Query()
	params.Set("access_token", accessToken)
	profileURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("profile request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var envelope struct {
		Data instagramProfile `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}

	return &envelope.Data, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
