package middleware_test

import (
	"context"
	"errors"
	"farmstay/config"
	"farmstay/infras/jwt"
	"farmstay/infras/otel/mocks"
	"farmstay/permissions"
	"farmstay/shared"
	"farmstay/shared/constant"
	"farmstay/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revocation struct {
	revoked map[string]bool
	err     error
}

func (r revocation) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return r.revoked[tokenID], r.err
}

type authFixture struct {
	jwt    jwt.JWT
	router http.Handler
	revoke map[string]bool
}

func newAuthFixture(t *testing.T, revokeErr error) authFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.AdminEmail = "admin@farmstay.test"
	cfg.App.APIKey = "internal-key"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	jwtService := jwt.New(cfg, mocks.NewOtel())
	revoked := map[string]bool{}

	perms := &permissions.PermissionData{Endpoints: []permissions.Permission{
		{Path: "/v1/farmhouses/", Method: http.MethodGet, Skip: true},
		{Path: "/v1/farmhouses/{id}", Method: http.MethodGet, Skip: true},
		{Path: "/v1/farmhouses/", Method: http.MethodPost, Permissions: []string{constant.RoleOwner, constant.RoleAdmin}},
		{Path: "/v1/bookings/mine", Method: http.MethodGet, Permissions: []string{constant.RoleVisitor, constant.RoleOwner, constant.RoleAdmin}},
		{Path: "/v1/bookings/{id}", Method: http.MethodGet, Permissions: []string{}},
		{Path: "/v1/users/", Method: http.MethodGet, Permissions: []string{constant.RoleAdmin}},
	}}

	m := middleware.NewAuthRoleMiddleware(jwtService, revocation{revoked: revoked, err: revokeErr}, mocks.NewOtel(), perms, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Actor", shared.Actor(r.Context()))
		w.Header().Set("X-Role", shared.Role(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}

	router := chi.NewRouter()
	router.Use(m.APIKey, m.Auth, m.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Route("/farmhouses", func(r chi.Router) {
			r.Get("/", echo)
			r.Post("/", echo)
			r.Get("/{id}", echo)
		})
		r.Route("/bookings", func(r chi.Router) {
			r.Get("/mine", echo)
			r.Get("/{id}", echo)
			r.Post("/{id}/refund", echo)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/", echo)
		})
	})

	return authFixture{jwt: jwtService, router: router, revoke: revoked}
}

func (f authFixture) token(t *testing.T, userID, email, role string) (string, string) {
	t.Helper()

	pair, err := f.jwt.GenerateTokenPair(context.Background(), userID, email, role)
	require.NoError(t, err)

	claims, err := f.jwt.ValidateToken(context.Background(), pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)

	return pair.AccessToken, claims.TokenID
}

func (f authFixture) do(method, path string, mutate func(r *http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if mutate != nil {
		mutate(req)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func bearer(token string) func(r *http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func TestAuth_PublicRoutes(t *testing.T) {
	f := newAuthFixture(t, nil)

	t.Run("anonymous", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/v1/farmhouses/abc", nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, constant.ContextGuest, rec.Header().Get("X-Actor"))
	})

	t.Run("token is still attached", func(t *testing.T) {
		token, _ := f.token(t, "owner-1", "owner@farmstay.test", constant.RoleOwner)

		rec := f.do(http.MethodGet, "/v1/farmhouses/", bearer(token))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "owner-1", rec.Header().Get("X-Actor"))
	})

	t.Run("bad token is ignored", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/v1/farmhouses/", bearer("garbage"))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, constant.ContextGuest, rec.Header().Get("X-Actor"))
	})
}

func TestAuth_ProtectedRoutes(t *testing.T) {
	f := newAuthFixture(t, nil)

	tests := []struct {
		name     string
		method   string
		path     string
		userID   string
		email    string
		role     string
		wantCode int
		wantRole string
	}{
		{name: "missing token", method: http.MethodGet, path: "/v1/bookings/mine", wantCode: http.StatusUnauthorized},
		{name: "every role listed on a session route", method: http.MethodGet, path: "/v1/bookings/mine", userID: "v-1", email: "v@farmstay.test", role: constant.RoleVisitor, wantCode: http.StatusNoContent, wantRole: constant.RoleVisitor},
		{name: "visitor cannot create listings", method: http.MethodPost, path: "/v1/farmhouses/", userID: "v-1", email: "v@farmstay.test", role: constant.RoleVisitor, wantCode: http.StatusForbidden},
		{name: "owner creates listings", method: http.MethodPost, path: "/v1/farmhouses", userID: "o-1", email: "o@farmstay.test", role: constant.RoleOwner, wantCode: http.StatusNoContent, wantRole: constant.RoleOwner},
		{name: "owner is not admin", method: http.MethodGet, path: "/v1/users/", userID: "o-1", email: "o@farmstay.test", role: constant.RoleOwner, wantCode: http.StatusForbidden},
		{name: "admin email fallback", method: http.MethodGet, path: "/v1/users/", userID: "a-1", email: "Admin@farmstay.test", role: constant.RoleVisitor, wantCode: http.StatusNoContent, wantRole: constant.RoleAdmin},
		{name: "unlisted route is forbidden", method: http.MethodPost, path: "/v1/bookings/b-1/refund", userID: "v-1", email: "v@farmstay.test", role: constant.RoleVisitor, wantCode: http.StatusForbidden},
		{name: "unlisted route is forbidden for admins too", method: http.MethodPost, path: "/v1/bookings/b-1/refund", userID: "a-1", email: "admin@farmstay.test", role: constant.RoleAdmin, wantCode: http.StatusForbidden},
		{name: "empty role list admits nobody", method: http.MethodGet, path: "/v1/bookings/b-1", userID: "o-1", email: "o@farmstay.test", role: constant.RoleOwner, wantCode: http.StatusForbidden},
		{name: "unlisted route still needs a token", method: http.MethodPost, path: "/v1/bookings/b-1/refund", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mutate func(r *http.Request)
			if tt.userID != "" {
				token, _ := f.token(t, tt.userID, tt.email, tt.role)
				mutate = bearer(token)
			}

			rec := f.do(tt.method, tt.path, mutate)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantRole != "" {
				assert.Equal(t, tt.wantRole, rec.Header().Get("X-Role"))
				assert.Equal(t, tt.userID, rec.Header().Get("X-Actor"))
			}
		})
	}
}

func TestAuth_CookieAndRevocation(t *testing.T) {
	f := newAuthFixture(t, nil)
	token, tokenID := f.token(t, "v-1", "v@farmstay.test", constant.RoleVisitor)

	cookie := func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: constant.CookieAccessToken, Value: token})
	}

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodGet, "/v1/bookings/mine", cookie).Code)

	f.revoke[tokenID] = true

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/v1/bookings/mine", cookie).Code)
}

func TestAuth_RevocationStoreDown(t *testing.T) {
	f := newAuthFixture(t, errors.New("redis: connection refused"))
	token, _ := f.token(t, "v-1", "v@farmstay.test", constant.RoleVisitor)

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodGet, "/v1/bookings/mine", bearer(token)).Code)
}

func TestAPIKey(t *testing.T) {
	f := newAuthFixture(t, nil)

	t.Run("valid key skips auth", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/v1/users/", func(r *http.Request) {
			r.Header.Set("X-API-Key", "internal-key")
		})

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, constant.ContextSystem, rec.Header().Get("X-Actor"))
	})

	t.Run("wrong key", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/v1/users/", func(r *http.Request) {
			r.Header.Set("X-API-Key", "nope")
		})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
