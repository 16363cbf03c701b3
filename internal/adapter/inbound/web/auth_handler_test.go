package web_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const stateCookie = "__instagram_state"

// callbackBody mirrors the callback JSON. Account ids are host-assigned and
// need not be ULIDs, so they are read as plain strings.
type callbackBody struct {
	AccountID string `json:"account_id"`
	Linked    bool   `json:"linked"`
	Created   bool   `json:"created"`
}

func callbackRequest(query, cookieState string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/auth/instagram/callback?"+query, nil)
	if cookieState != "" {
		req.AddCookie(&http.Cookie{Name: stateCookie, Value: cookieState})
	}
	return req
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("redirects with state", func(t *testing.T) {
		env := newWebEnv(t, true)

		w := env.do(httptest.NewRequest(http.MethodGet, "/auth/instagram", nil))

		if w.Code != http.StatusFound {
			t.Fatalf("status = %d, want 302", w.Code)
		}
		if !strings.HasPrefix(w.Header().Get("Location"), env.client.AuthURL) {
			t.Errorf("Location = %q", w.Header().Get("Location"))
		}

		cookie := cookieNamed(w.Result(), stateCookie)
		if cookie == nil {
			t.Fatal("state cookie not set")
		}
		if !cookie.HttpOnly {
			t.Error("state cookie should be HttpOnly")
		}
		if len(env.client.States) != 1 || env.client.States[0] != cookie.Value {
			t.Errorf("state sent to provider %v does not match cookie %q", env.client.States, cookie.Value)
		}
	})

	t.Run("disabled provider", func(t *testing.T) {
		env := newWebEnv(t, false)

		w := env.do(httptest.NewRequest(http.MethodGet, "/auth/instagram", nil))

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
		if !strings.Contains(w.Body.String(), "STRATEGY_DISABLED") {
			t.Errorf("body = %s", w.Body.String())
		}
	})
}

func TestAuthHandler_Callback(t *testing.T) {
	t.Run("creates account", func(t *testing.T) {
		env := newWebEnv(t, true)

		w := env.do(callbackRequest("state=s1&code=c1", "s1"))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		var result callbackBody
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if !result.Created || result.AccountID == "" {
			t.Errorf("result = %+v", result)
		}
		if len(env.client.Codes) != 1 || env.client.Codes[0] != "c1" {
			t.Errorf("codes = %v, want [c1]", env.client.Codes)
		}
		if mapped, ok := env.objects.Field("instagramId:uid", "42"); !ok || mapped != result.AccountID {
			t.Errorf("mapping = %q, want %q", mapped, result.AccountID)
		}

		cookie := cookieNamed(w.Result(), stateCookie)
		if cookie == nil || cookie.MaxAge >= 0 {
			t.Errorf("state cookie should be expired, got %+v", cookie)
		}
	})

	t.Run("signed-in caller links", func(t *testing.T) {
		env := newWebEnv(t, true)
		req := callbackRequest("state=s1&code=c1", "s1")
		req.Header.Set("X-Account-ID", "7")

		w := env.do(req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		var result callbackBody
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if !result.Linked || result.AccountID != "7" {
			t.Errorf("result = %+v, want linked to 7", result)
		}
		if env.accounts.Calls.Create != 0 {
			t.Error("no account should be created")
		}
	})

	for _, guest := range []string{"0", "-1"} {
		t.Run("guest header "+guest+" resolves", func(t *testing.T) {
			env := newWebEnv(t, true)
			req := callbackRequest("state=s1&code=c1", "s1")
			req.Header.Set("X-Account-ID", guest)

			w := env.do(req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
			}
			var result callbackBody
			if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if result.Linked || !result.Created || result.AccountID == guest {
				t.Errorf("result = %+v, want a new account", result)
			}
			if mapped, _ := env.objects.Field("instagramId:uid", "42"); mapped == guest {
				t.Errorf("mapping points at guest id %q", guest)
			}
		})
	}

	failures := []struct {
		name   string
		query  string
		cookie string
		setup  func(env *webEnv)
	}{
		{name: "missing state cookie", query: "state=s1&code=c1"},
		{name: "state mismatch", query: "state=s1&code=c1", cookie: "other"},
		{name: "provider denied", query: "state=s1&error=access_denied", cookie: "s1"},
		{
			name:   "exchange failure",
			query:  "state=s1&code=c1",
			cookie: "s1",
			setup: func(env *webEnv) {
				env.client.Errors.Exchange = errors.New("exchange failed")
			},
		},
		{
			name:   "resolution failure",
			query:  "state=s1&code=c1",
			cookie: "s1",
			setup: func(env *webEnv) {
				env.objects.Errors.GetObjectField = errors.New("store unavailable")
			},
		},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			env := newWebEnv(t, true)
			if tt.setup != nil {
				tt.setup(env)
			}

			w := env.do(callbackRequest(tt.query, tt.cookie))

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
				t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
			}
			body := w.Body.String()
			if !strings.Contains(body, "Login failed") || !strings.Contains(body, siteURL+"/auth/instagram") {
				t.Errorf("body = %s", body)
			}
			if env.accounts.Count() != 0 {
				t.Error("no account should be created")
			}
			if len(env.logger.Entries("warn")) == 0 {
				t.Error("failure should be logged")
			}
		})
	}

	t.Run("denied callback does not exchange", func(t *testing.T) {
		env := newWebEnv(t, true)

		env.do(callbackRequest("state=s1&error=access_denied", "s1"))

		if len(env.client.Codes) != 0 {
			t.Errorf("codes = %v, want none", env.client.Codes)
		}
	})
}
