package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"farmstay/client"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	requestDto "farmstay/internal/domains/bookingrequest/model/dto"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func newStore(t *testing.T) *client.FileStore {
	t.Helper()

	return client.NewFileStore(filepath.Join(t.TempDir(), "farmctl", "session.json"))
}

func seed(t *testing.T, store client.Store, session client.Session) {
	t.Helper()

	blob, err := json.Marshal(session)
	require.NoError(t, err)
	require.NoError(t, store.Save(blob))
}

func newClient(server *httptest.Server, store client.Store) *client.Client {
	return client.New(server.URL+"/", store,
		client.WithHTTPClient(server.Client()),
		client.WithClock(func() time.Time { return now }),
		client.WithRecoverPolicy(3, 10*time.Millisecond, time.Second),
	)
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body["password"] != "secret123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})

			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
			"access_token": "access", "refresh_token": "refresh", "token_type": "Bearer",
			"expires_in": 900, "role": "owner",
		}})
	}))
	defer server.Close()

	t.Run("persists session", func(t *testing.T) {
		store := newStore(t)

		session, err := newClient(server, store).Login(context.Background(), "owner@farmstay.test", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "owner", session.Role)
		assert.Equal(t, now.Add(15*time.Minute), session.ExpiresAt)

		info, err := os.Stat(store.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("wrong password", func(t *testing.T) {
		store := newStore(t)

		_, err := newClient(server, store).Login(context.Background(), "owner@farmstay.test", "nope")

		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Invalid credentials", apiErr.Message)

		_, err = store.Load()
		assert.Error(t, err)
	})
}

func TestRecover(t *testing.T) {
	valid := client.Session{AccessToken: "access", ExpiresAt: now.Add(time.Hour)}

	tests := []struct {
		name    string
		blob    []byte
		session *client.Session
		answers []int
		calls   int32
		wantErr bool
		wiped   bool
	}{
		{name: "first try", session: &valid, answers: []int{http.StatusOK}, calls: 1},
		{name: "succeeds on the third try", session: &valid, answers: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusOK}, calls: 3},
		{name: "gives up after three tries", session: &valid, answers: []int{http.StatusBadGateway, http.StatusBadGateway, http.StatusBadGateway, http.StatusOK}, calls: 3, wantErr: true, wiped: true},
		{name: "rejected token stops retrying", session: &valid, answers: []int{http.StatusUnauthorized, http.StatusOK}, calls: 1, wantErr: true, wiped: true},
		{name: "forbidden token", session: &valid, answers: []int{http.StatusForbidden}, calls: 1, wantErr: true, wiped: true},
		{name: "expired blob", session: &client.Session{AccessToken: "access", ExpiresAt: now.Add(-time.Minute)}, wantErr: true, wiped: true},
		{name: "blob without token", session: &client.Session{ExpiresAt: now.Add(time.Hour)}, wantErr: true, wiped: true},
		{name: "malformed blob", blob: []byte("{not json"), wantErr: true, wiped: true},
		{name: "no blob", wantErr: true, wiped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)

				assert.Equal(t, "/v1/auth/session", r.URL.Path)
				assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))

				code := tt.answers[n-1]
				if code != http.StatusOK {
					writeJSON(w, code, map[string]string{"error": http.StatusText(code)})

					return
				}

				writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"user_id": "u-1", "role": "owner"}})
			}))
			defer server.Close()

			store := newStore(t)
			if tt.session != nil {
				seed(t, store, *tt.session)
			}

			if tt.blob != nil {
				require.NoError(t, store.Save(tt.blob))
			}

			res, err := newClient(server, store).Recover(context.Background())

			assert.Equal(t, tt.calls, calls.Load())

			if tt.wantErr {
				require.ErrorIs(t, err, client.ErrNoSession)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "u-1", res.UserID)
			}

			_, loadErr := store.Load()
			assert.Equal(t, tt.wiped, loadErr != nil)
		})
	}
}

func TestRecover_HardTimeout(t *testing.T) {
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	store := newStore(t)
	seed(t, store, client.Session{AccessToken: "access", ExpiresAt: now.Add(time.Hour)})

	c := client.New(server.URL, store,
		client.WithHTTPClient(server.Client()),
		client.WithClock(func() time.Time { return now }),
		client.WithRecoverPolicy(3, 10*time.Millisecond, 100*time.Millisecond),
	)

	start := time.Now()
	_, err := c.Recover(context.Background())

	require.ErrorIs(t, err, client.ErrNoSession)
	assert.Less(t, time.Since(start), 2*time.Second)

	_, loadErr := store.Load()
	assert.Error(t, loadErr)
}

func TestLogout(t *testing.T) {
	var revoked atomic.Bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth/logout", r.URL.Path)
		revoked.Store(r.Header.Get("Authorization") == "Bearer access")
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
	}))
	defer server.Close()

	store := newStore(t)
	seed(t, store, client.Session{AccessToken: "access", ExpiresAt: now.Add(time.Hour)})

	require.NoError(t, newClient(server, store).Logout(context.Background()))
	assert.True(t, revoked.Load())

	_, err := store.Load()
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSearchAndRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "Bogor", r.URL.Query().Get("location"))
			writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
				"farmhouses": []map[string]any{{"id": "f-1", "name": "Green Acre", "price_per_night": 4500}},
				"total_data": 1, "total_page": 1,
			}})
		case http.MethodPost:
			assert.Equal(t, "/v1/booking-requests/", r.URL.Path)
			writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]any{"id": "r-1", "status": "new"}})
		}
	}))
	defer server.Close()

	c := newClient(server, newStore(t))

	list, err := c.SearchFarmhouses(context.Background(), url.Values{"location": []string{"Bogor"}})
	require.NoError(t, err)
	require.Len(t, list.Farmhouses, 1)
	assert.Equal(t, "Green Acre", list.Farmhouses[0].Name)

	created, err := c.SubmitBookingRequest(context.Background(), requestDto.CreateRequest{
		Name: "Sari", Phone: "0812345678", Email: "sari@farmstay.test", CheckIn: "2026-04-01", CheckOut: "2026-04-03", Guests: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "new", created.Status)
}
