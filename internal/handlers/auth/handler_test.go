package auth_test

import (
	"farmstay/config"
	"farmstay/infras/otel/mocks"
	"farmstay/internal/domains/auth/model/dto"
	serviceMocks "farmstay/internal/domains/auth/service/mocks"
	"farmstay/internal/handlers/auth"
	"farmstay/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*serviceMocks.MockAuth, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockAuth(ctrl)

	cfg := &config.Config{}
	cfg.App.FrontendURL = "https://farmstay.test/"

	handler := auth.New(svc, mocks.NewOtel(), cfg)
	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return svc, router
}

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	res := map[string]*http.Cookie{}
	for _, cookie := range rec.Result().Cookies() {
		res[cookie.Name] = cookie
	}

	return res
}

func TestHandler_Callback(t *testing.T) {
	t.Run("redirects by role with cookies", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().
			Callback(gomock.Any(), dto.CallbackRequest{Code: "abc", State: "xyz"}).
			Return(dto.LoginResponse{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900, RefreshExpiresIn: 3600, RedirectTo: "/admin"}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/auth/callback?code=abc&state=xyz", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://farmstay.test/admin", rec.Header().Get("Location"))

		cookies := cookiesByName(rec)
		require.Contains(t, cookies, "access_token")
		assert.Equal(t, "access", cookies["access_token"].Value)
		assert.True(t, cookies["access_token"].HttpOnly)
		assert.Equal(t, 3600, cookies["refresh_token"].MaxAge)
	})

	t.Run("invalid code goes back to login", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().
			Callback(gomock.Any(), dto.CallbackRequest{}).
			Return(dto.LoginResponse{}, failure.BadRequestFromString("missing code"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/auth/callback", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://farmstay.test/login?error=missing+code", rec.Header().Get("Location"))
		assert.Empty(t, rec.Result().Cookies())
	})
}

func TestHandler_Login(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		_, router := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"not-an-email"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().
			Login(gomock.Any(), dto.LoginRequest{Email: "guest@farmstay.test", Password: "secret-pass"}).
			Return(dto.LoginResponse{AccessToken: "access", Role: "visitor", RedirectTo: "/"}, nil)

		rec := httptest.NewRecorder()
		body := strings.NewReader(`{"email":"guest@farmstay.test","password":"secret-pass"}`)
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", body))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"redirect_to":"/"`)
		assert.Contains(t, cookiesByName(rec), "access_token")
	})
}

func TestHandler_Logout(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Logout(gomock.Any()).Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := cookiesByName(rec)
	require.Contains(t, cookies, "access_token")
	assert.Empty(t, cookies["access_token"].Value)
	assert.Less(t, cookies["access_token"].MaxAge, 0)
}

func TestHandler_RefreshToken_FromCookie(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().
		RefreshToken(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "from-cookie"}).
		Return(dto.LoginResponse{AccessToken: "new"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "from-cookie"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
