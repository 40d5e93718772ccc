package sitesetting_test

import (
	"encoding/json"
	"farmstay/infras/otel/mocks"
	"farmstay/internal/domains/sitesetting/model/dto"
	serviceMocks "farmstay/internal/domains/sitesetting/service/mocks"
	"farmstay/internal/handlers/sitesetting"
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

func newRouter(t *testing.T) (*serviceMocks.MockSiteSetting, http.Handler) {
	t.Helper()

	svc := serviceMocks.NewMockSiteSetting(gomock.NewController(t))

	handler := sitesetting.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return svc, router
}

func TestHandler_GetSiteSettings(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any()).Return(dto.SettingsResponse{"hero_title": "Farm stays"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/site-settings", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body := struct {
		Data map[string]string `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Farm stays", body.Data["hero_title"])
}

func TestHandler_GetSiteSetting(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "missing").Return(dto.SiteSettingResponse{}, failure.NotFound("site setting not found"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/site-settings/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_UpsertSiteSetting(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Upsert(gomock.Any(), "hero_title", dto.UpsertRequest{Value: "Farm stays"}).Return(dto.SiteSettingResponse{Key: "hero_title", Value: "Farm stays"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/site-settings/hero_title", strings.NewReader(`{"value":"Farm stays"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
}
