package user_test

import (
	"context"
	"encoding/json"
	"farmstay/infras/otel/mocks"
	"farmstay/internal/domains/user/model/dto"
	serviceMocks "farmstay/internal/domains/user/service/mocks"
	"farmstay/internal/handlers/user"
	"farmstay/shared/failure"
	gDto "farmstay/shared/dto"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*serviceMocks.MockUser, http.Handler) {
	t.Helper()

	svc := serviceMocks.NewMockUser(gomock.NewController(t))

	handler := user.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return svc, router
}

func TestHandler_GetUsers(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error) {
			assert.Equal(t, 2, params.Page)

			_, args := filter.GetWhereClause()
			assert.Equal(t, "owner", args["role"])
			assert.Equal(t, true, args["is_active"])
			assert.Equal(t, "%sari%", args["search_email"])

			return dto.GetUsersResponse{Users: []dto.UserResponse{{ID: "u-1", Role: "owner"}}, TotalData: 1, TotalPage: 1}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users/?page=2&role=owner&is_active=true&search=sari", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body := struct {
		Data dto.GetUsersResponse `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Users, 1)
	assert.Equal(t, "u-1", body.Data.Users[0].ID)
}

func TestHandler_GetMe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "signed in", code: http.StatusOK},
		{name: "guest", err: failure.Unauthorized("Authentication required"), code: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)

			svc.EXPECT().Me(gomock.Any()).Return(dto.UserResponse{ID: "u-1", Role: "visitor"}, tt.err)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users/me", nil))

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandler_UpdateMe(t *testing.T) {
	t.Run("invalid body", func(t *testing.T) {
		_, router := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/v1/users/me", strings.NewReader(`{"full_name":"x"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("updated", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.UpdateProfileRequest) error {
				require.NotNil(t, req.FullName)
				assert.Equal(t, "Sari Dewi", *req.FullName)

				return nil
			})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/v1/users/me", strings.NewReader(`{"full_name":"Sari Dewi"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandler_GetUserByID(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "missing").Return(dto.UserResponse{}, failure.NotFound("user not found"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_UpdateUser(t *testing.T) {
	t.Run("unknown role", func(t *testing.T) {
		_, router := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/v1/users/u-1", strings.NewReader(`{"role":"root"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("promoted to owner", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Update(gomock.Any(), gomock.Any(), "u-1").
			DoAndReturn(func(_ context.Context, req dto.UpdateUserRequest, _ string) error {
				require.NotNil(t, req.Role)
				assert.Equal(t, "owner", *req.Role)

				return nil
			})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/v1/users/u-1", strings.NewReader(`{"role":"owner"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandler_DeleteUser(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Delete(gomock.Any(), "u-1").Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/users/u-1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
