package model_test

import (
	"testing"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
)

func TestInstagramProvider(t *testing.T) {
	p := model.InstagramProvider()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"name", p.Name(), "Instagram"},
		{"key", p.Key(), "instagram"},
		{"plugin id", p.PluginID(), "sso-instagram"},
		{"icon", p.Icon(), "fa-instagram"},
		{"id field", p.IDField(), "instagramId"},
		{"access token field", p.AccessTokenField(), "instagramAccessToken"},
		{"username field", p.UsernameField(), "instagramUsername"},
		{"mapping object", p.MappingObject(), "instagramId:uid"},
		{"settings key", p.SettingsKey(), "sso-instagram"},
		{"login path", p.LoginPath(), "/auth/instagram"},
		{"callback path", p.CallbackPath(), "/auth/instagram/callback"},
		{"admin route", p.AdminRoute(), "/plugins/sso-instagram"},
		{"placeholder email", p.PlaceholderEmail("alice"), "alice@instagram.com"},
		{"profile url", p.ProfileURL("alice"), "https://www.instagram.com/alice/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestProvider_URLs(t *testing.T) {
	p := model.InstagramProvider()

	t.Run("trailing slash on site url", func(t *testing.T) {
		if got := p.CallbackURL("https://forum.example.com/"); got != "https://forum.example.com/auth/instagram/callback" {
			t.Errorf("CallbackURL = %q", got)
		}
	})

	t.Run("no trailing slash", func(t *testing.T) {
		if got := p.LoginURL("https://forum.example.com"); got != "https://forum.example.com/auth/instagram" {
			t.Errorf("LoginURL = %q", got)
		}
	})
}
