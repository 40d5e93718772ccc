package metrics_test

import (
	"farmstay/infras/metrics"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCollectors(t *testing.T) {
	metrics.Register()
	metrics.Register()

	metrics.ObserveHTTP("/v1/farmhouses/{id}", http.MethodGet, http.StatusOK, 20*time.Millisecond)
	metrics.IncBooking("confirmed")
	metrics.IncRateLimited()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `farmstay_http_requests_total{method="GET",route="/v1/farmhouses/{id}",status="200"} 1`)
	assert.Contains(t, string(body), `farmstay_bookings_total{status="confirmed"} 1`)
	assert.Contains(t, string(body), "farmstay_rate_limited_requests_total 1")
}
