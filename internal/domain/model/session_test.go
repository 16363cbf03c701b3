package model_test

import (
	"testing"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-sso-instagram/internal/domain/model"
)

func TestAuthenticatedSession(t *testing.T) {
	tests := []struct {
		name              string
		accountID         types.ID
		wantAuthenticated bool
	}{
		{"numeric account", "7", true},
		{"ulid account", types.ID("01HZY4C0QJ6R6K1Y5V8N3T2W9X"), true},
		{"empty", "", false},
		{"guest uid", "0", false},
		{"negative uid", "-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := model.AuthenticatedSession(tt.accountID)

			if session.IsAuthenticated() != tt.wantAuthenticated {
				t.Errorf("IsAuthenticated() = %v, want %v", session.IsAuthenticated(), tt.wantAuthenticated)
			}
			if tt.wantAuthenticated {
				if got := session.AccountID().MustGet(); got != tt.accountID {
					t.Errorf("AccountID() = %v, want %v", got, tt.accountID)
				}
			}
		})
	}
}

func TestAnonymousSession(t *testing.T) {
	if model.AnonymousSession().IsAuthenticated() {
		t.Error("anonymous session should not be authenticated")
	}
}
