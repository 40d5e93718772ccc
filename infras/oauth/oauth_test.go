package oauth

import (
	"context"
	"encoding/json"
	"farmstay/config"
	"farmstay/infras/otel/mocks"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestProvider(t *testing.T, profile map[string]any) *googleProvider {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"provider-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-token" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		_ = json.NewEncoder(w).Encode(profile)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.OAuth.Google.ClientID = "client"
	cfg.OAuth.Google.ClientSecret = "secret"
	cfg.OAuth.Google.RedirectURL = "http://localhost:8080/v1/auth/callback"

	endpoint := oauth2.Endpoint{
		AuthURL:   server.URL + "/auth",
		TokenURL:  server.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}

	return newGoogle(cfg, mocks.NewOtel(), endpoint, server.URL+"/userinfo")
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	provider := newTestProvider(t, nil)

	raw := provider.AuthCodeURL("state-123")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "state-123", parsed.Query().Get("state"))
	assert.Equal(t, "client", parsed.Query().Get("client_id"))
	assert.Equal(t, "openid email profile", parsed.Query().Get("scope"))
	assert.True(t, provider.Enabled())
}

func TestGoogleProvider_Exchange(t *testing.T) {
	t.Run("verified profile", func(t *testing.T) {
		provider := newTestProvider(t, map[string]any{
			"sub": "g-1", "email": "meera@farmstay.test", "email_verified": true, "name": "Meera",
		})

		identity, err := provider.Exchange(context.Background(), "good-code")
		require.NoError(t, err)
		assert.Equal(t, Identity{Subject: "g-1", Email: "meera@farmstay.test", EmailVerified: true, Name: "Meera"}, identity)
	})

	t.Run("unverified email", func(t *testing.T) {
		provider := newTestProvider(t, map[string]any{"sub": "g-2", "email": "x@farmstay.test"})

		_, err := provider.Exchange(context.Background(), "good-code")
		assert.ErrorIs(t, err, ErrNoEmail)
	})

	t.Run("bad code", func(t *testing.T) {
		provider := newTestProvider(t, nil)

		_, err := provider.Exchange(context.Background(), "bad-code")
		assert.Error(t, err)
	})

	t.Run("not configured", func(t *testing.T) {
		provider := newGoogle(&config.Config{}, mocks.NewOtel(), oauth2.Endpoint{}, "")

		_, err := provider.Exchange(context.Background(), "good-code")
		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.False(t, provider.Enabled())
	})
}
