package farmhouse_test

import (
	"bytes"
	"context"
	"encoding/json"
	"farmstay/infras/otel/mocks"
	"farmstay/internal/domains/farmhouse/model/dto"
	serviceMocks "farmstay/internal/domains/farmhouse/service/mocks"
	"farmstay/internal/handlers/farmhouse"
	gDto "farmstay/shared/dto"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*serviceMocks.MockFarmhouse, http.Handler) {
	t.Helper()

	svc := serviceMocks.NewMockFarmhouse(gomock.NewController(t))

	handler := farmhouse.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return svc, router
}

func multipartImage(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="front.png"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHandler_SearchFarmhouses(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFarmhousesResponse, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, 10, params.Limit)

			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "farmhouses.is_active")
			assert.Equal(t, 4, args["max_guests"])

			return dto.GetFarmhousesResponse{TotalData: 1, TotalPage: 1, Farmhouses: []dto.FarmhouseResponse{{ID: "f-1"}}}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/farmhouses?page=2&guests=4", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body := struct {
		Data dto.GetFarmhousesResponse `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "f-1", body.Data.Farmhouses[0].ID)
}

func TestHandler_CreateFarmhouse(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		_, router := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/farmhouses", strings.NewReader(`{"name":"ab"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("created", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.FarmhouseResponse{ID: "f-1"}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/farmhouses",
			strings.NewReader(`{"name":"Mango Grove","location":"Alibaug","price_per_night":4500,"max_guests":6}`)))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestHandler_UploadImage(t *testing.T) {
	t.Run("rejects other content types", func(t *testing.T) {
		_, router := newRouter(t)

		body, contentType := multipartImage(t, "image/gif", []byte("gif"))
		req := httptest.NewRequest(http.MethodPost, "/v1/farmhouses/f-1/images", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("uploads png", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().
			UploadImage(gomock.Any(), gomock.Any(), "f-1").
			DoAndReturn(func(_ context.Context, req dto.UploadImageRequest, _ string) (dto.UploadImageResponse, error) {
				assert.Equal(t, "front.png", req.FileName)
				assert.Equal(t, "image/png", req.ContentType)
				assert.Equal(t, int64(3), req.Size)

				return dto.UploadImageResponse{URL: "https://cdn.farmstay.test/x.png"}, nil
			})

		body, contentType := multipartImage(t, "image/png", []byte("png"))
		req := httptest.NewRequest(http.MethodPost, "/v1/farmhouses/f-1/images", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestHandler_DeleteFarmhouse(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Delete(gomock.Any(), "f-1", true).Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/farmhouses/f-1?hard=true", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
