package middleware_test

import (
	"errors"
	"farmstay/config"
	"farmstay/infras/otel/mocks"
	"farmstay/shared/cache"
	cacheMocks "farmstay/shared/cache/mocks"
	"farmstay/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func limiterConfig(maxRequests int) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func limitedRouter(app middleware.AppMiddleware) http.Handler {
	router := chi.NewRouter()
	router.Use(app.Tracing, app.Metrics, app.RateLimit())
	router.Post("/v1/booking-requests", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	return router
}

func send(router http.Handler, ip string) *httptest.ResponseRecorder {
	return sendAs(router, ip, "farmctl")
}

func sendAs(router http.Handler, ip, agent string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/booking-requests", nil)
	req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
	req.Header.Set("User-Agent", agent)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestRateLimit_Redis(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(2), cache.NewRedisCache(client, mocks.NewOtel()))
	router := limitedRouter(app)

	first := send(router, "203.0.113.7")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusCreated, send(router, "203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(router, "203.0.113.7").Code)

	assert.Equal(t, http.StatusCreated, send(router, "198.51.100.2").Code, "other clients keep their own window")
	assert.True(t, server.Exists("limiter:203.0.113.7"))
}

func TestRateLimit_IgnoresUserAgent(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	router := limitedRouter(middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(2), cache.NewRedisCache(client, mocks.NewOtel())))

	assert.Equal(t, http.StatusCreated, sendAs(router, "203.0.113.7", "curl/8.0").Code)
	assert.Equal(t, http.StatusCreated, sendAs(router, "203.0.113.7", "Mozilla/5.0").Code)
	assert.Equal(t, http.StatusTooManyRequests, sendAs(router, "203.0.113.7", "python-requests/2.31").Code)
	assert.Equal(t, http.StatusTooManyRequests, sendAs(router, "203.0.113.7", "").Code)
}

func TestRateLimit_FallsBackWhenRedisFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(0), errors.New("connection refused")).AnyTimes()

	router := limitedRouter(middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(2), redisCache))

	assert.Equal(t, http.StatusCreated, send(router, "203.0.113.7").Code)
	assert.Equal(t, http.StatusCreated, send(router, "203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(router, "203.0.113.7").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := limitedRouter(middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl)))

	for range 5 {
		assert.Equal(t, http.StatusCreated, send(router, "203.0.113.7").Code)
	}
}
