package http

import (
	"context"
	"farmstay/config"
	"farmstay/infras/jwt"
	"farmstay/infras/otel/mocks"
	"farmstay/internal/handlers/bookingrequest"
	"farmstay/permissions"
	"farmstay/transport/http/middleware"
	"farmstay/transport/http/router"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type noRevocation struct{}

func (noRevocation) IsRevoked(context.Context, string) (bool, error) {
	return false, nil
}

func newServer() *HTTP {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://farmstay.test"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet}

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, nil)
	authRole := middleware.NewAuthRoleMiddleware(jwt.New(cfg, mocks.NewOtel()), noRevocation{}, mocks.NewOtel(), permissions.Get(), cfg)

	return New(cfg, router.New(router.DomainHandlers{
		BookingRequest: bookingrequest.New(nil, mocks.NewOtel(), app),
	}), app, authRole)
}

func TestHealthFollowsServerState(t *testing.T) {
	server := newServer()

	tests := []struct {
		name  string
		state ServerState
		code  int
	}{
		{name: "ready", state: ServerStateReady, code: http.StatusOK},
		{name: "grace period", state: ServerStateInGracePeriod, code: http.StatusServiceUnavailable},
		{name: "cleanup period", state: ServerStateInCleanupPeriod, code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server.setup()
			server.setState(tt.state)

			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server := newServer()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMetricsAndCORS(t *testing.T) {
	server := newServer()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://farmstay.test")

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	assert.Equal(t, "https://farmstay.test", rec.Header().Get("Access-Control-Allow-Origin"))
}
