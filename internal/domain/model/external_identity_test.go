package model_test

import (
	"testing"

	domainerror "github.com/0xsj/overwatch-sso-instagram/internal/domain/error"
	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
)

func TestNewExternalIdentity(t *testing.T) {
	t.Run("valid inputs", func(t *testing.T) {
		identity, err := model.NewExternalIdentity("42", "alice", "Alice", "", "https://alice.example.com", "tok")

		if err != nil {
			t.Fatalf("NewExternalIdentity() error = %v", err)
		}
		if identity.ID() != "42" {
			t.Errorf("ID = %q, want %q", identity.ID(), "42")
		}
		if !identity.DisplayName().IsPresent() {
			t.Error("DisplayName should be present")
		}
		if identity.PictureURL().IsPresent() {
			t.Error("empty PictureURL should be absent")
		}
		if identity.WebsiteURL().MustGet() != "https://alice.example.com" {
			t.Errorf("WebsiteURL = %q", identity.WebsiteURL().MustGet())
		}
	})

	tests := []struct {
		name     string
		id       string
		username string
		token    string
		wantErr  error
	}{
		{"missing id", "", "alice", "tok", domainerror.ErrExternalIDRequired},
		{"missing username", "42", "", "tok", domainerror.ErrUsernameRequired},
		{"missing token", "42", "alice", "", domainerror.ErrAccessTokenRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := model.NewExternalIdentity(tt.id, tt.username, "", "", "", tt.token)

			if err != tt.wantErr {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if identity != nil {
				t.Error("identity should be nil")
			}
		})
	}
}

func TestAssociations(t *testing.T) {
	p := model.InstagramProvider()

	t.Run("linked", func(t *testing.T) {
		a := model.NewLinkedAssociation(p, "alice")

		if !a.Associated {
			t.Error("should be associated")
		}
		if a.URL != "https://www.instagram.com/alice/" {
			t.Errorf("URL = %q", a.URL)
		}
		if a.Name != "Instagram" || a.Icon != "fa-instagram" {
			t.Errorf("unexpected name/icon: %q %q", a.Name, a.Icon)
		}
	})

	t.Run("unlinked", func(t *testing.T) {
		a := model.NewUnlinkedAssociation(p, "https://forum.example.com")

		if a.Associated {
			t.Error("should not be associated")
		}
		if a.URL != "https://forum.example.com/auth/instagram" {
			t.Errorf("URL = %q", a.URL)
		}
	})

	t.Run("strategy descriptor", func(t *testing.T) {
		s := model.NewStrategy(p)

		if s.Name != "instagram" || s.URL != "/auth/instagram" || s.CallbackURL != "/auth/instagram/callback" {
			t.Errorf("unexpected strategy: %+v", s)
		}
		if s.Scope != "" {
			t.Errorf("Scope = %q, want empty", s.Scope)
		}
	})

	t.Run("menu item", func(t *testing.T) {
		item := model.NewAdminMenuItem(p)

		if item.Route != "/plugins/sso-instagram" || item.Icon != "fa-instagram" || item.Name != "Instagram" {
			t.Errorf("unexpected menu item: %+v", item)
		}
	})
}
