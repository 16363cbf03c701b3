package model

import (
	"fmt"
	"strings"
)

// Provider describes an external identity provider and every name derived from it:
// account field names, the mapping object, routes and the placeholder email domain.
// A Provider is built once at startup and passed by value; it has no setters.
type Provider struct {
	name           string
	key            string
	pluginID       string
	icon           string
	emailDomain    string
	profileBaseURL string
}

// InstagramProvider returns the Instagram provider description.
func InstagramProvider() Provider {
	return Provider{
		name:           "Instagram",
		key:            "instagram",
		pluginID:       "sso-instagram",
		icon:           "fa-instagram",
		emailDomain:    "instagram.com",
		profileBaseURL: "https://www.instagram.com/",
	}
}

// Getters

func (p Provider) Name() string        { return p.name }
func (p Provider) Key() string         { return p.key }
func (p Provider) PluginID() string    { return p.pluginID }
func (p Provider) Icon() string        { return p.icon }
func (p Provider) EmailDomain() string { return p.emailDomain }

// Account fields owned by the provider

func (p Provider) IDField() string          { return p.key + "Id" }
func (p Provider) AccessTokenField() string { return p.key + "AccessToken" }
func (p Provider) UsernameField() string    { return p.key + "Username" }

// MappingObject is the key-value object holding externalId -> accountId fields.
func (p Provider) MappingObject() string {
	return p.IDField() + ":uid"
}

// SettingsKey is the name under which the provider's durable settings are stored.
func (p Provider) SettingsKey() string {
	return p.pluginID
}

// Routes

func (p Provider) LoginPath() string    { return "/auth/" + p.key }
func (p Provider) CallbackPath() string { return p.LoginPath() + "/callback" }
func (p Provider) AdminRoute() string   { return "/plugins/" + p.pluginID }

// LoginURL returns the absolute login-initiation URL for the given site base URL.
func (p Provider) LoginURL(siteURL string) string {
	return strings.TrimRight(siteURL, "/") + p.LoginPath()
}

// CallbackURL returns the absolute OAuth redirect target for the given site base URL.
func (p Provider) CallbackURL(siteURL string) string {
	return strings.TrimRight(siteURL, "/") + p.CallbackPath()
}

// PlaceholderEmail synthesizes an address for providers that do not return one.
func (p Provider) PlaceholderEmail(username string) string {
	return fmt.Sprintf("%s@%s", username, p.emailDomain)
}

// ProfileURL returns the public profile page of a provider user.
func (p Provider) ProfileURL(username string) string {
	return p.profileBaseURL + username + "/"
}
