package response_test

import (
	"errors"
	"farmstay/shared/failure"
	"farmstay/transport/http/response"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusOK, map[string]int{"total_data": 2})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"total_data":2}}`, rec.Body.String())
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"failure keeps its message", failure.Conflict("dates are already booked"), http.StatusConflict, `{"error":"dates are already booked"}`},
		{"wrapped failure", errors.Join(errors.New("ctx"), failure.NotFound("farmhouse not found")), http.StatusNotFound, `{"error":"ctx\nfarmhouse not found"}`},
		{"plain error is hidden", errors.New("pq: relation does not exist"), http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWithFile(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithFile(rec, "text/csv", "bookings.csv", []byte("a,b\n"))

	assert.Equal(t, `attachment; filename="bookings.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, "a,b\n", rec.Body.String())
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"message":"REQUEST LIMIT EXCEEDED"}`, rec.Body.String())
}
