// Package client talks to the farmstay API and keeps the login session on disk.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"farmstay/shared/constant"
	"farmstay/transport/http/response"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	authDto "farmstay/internal/domains/auth/model/dto"
	requestDto "farmstay/internal/domains/bookingrequest/model/dto"
	farmhouseDto "farmstay/internal/domains/farmhouse/model/dto"
)

const (
	defaultTimeout = 10 * time.Second

	defaultRecoverAttempts = 3
	defaultRecoverDelay    = time.Second
	defaultRecoverTimeout  = 8 * time.Second
)

var ErrNoSession = errors.New("no active session")

// APIError is a non 2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("farmstay api: %d %s", e.StatusCode, e.Message)
}

// Rejected reports whether the API refused the credentials themselves.
func (e *APIError) Rejected() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      Store
	now        func() time.Time

	recoverAttempts uint
	recoverDelay    time.Duration
	recoverTimeout  time.Duration
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRecoverPolicy overrides how often and how long Recover asks for the session.
func WithRecoverPolicy(attempts uint, delay, timeout time.Duration) Option {
	return func(c *Client) {
		c.recoverAttempts = attempts
		c.recoverDelay = delay
		c.recoverTimeout = timeout
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func New(baseURL string, store Store, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		httpClient:      &http.Client{Timeout: defaultTimeout},
		store:           store,
		now:             time.Now,
		recoverAttempts: defaultRecoverAttempts,
		recoverDelay:    defaultRecoverDelay,
		recoverTimeout:  defaultRecoverTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Login exchanges credentials for tokens and persists them.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var res authDto.LoginResponse

	body := authDto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", "", body, &res); err != nil {
		return Session{}, err
	}

	session := Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    res.TokenType,
		Role:         res.Role,
		ExpiresAt:    c.now().Add(time.Duration(res.ExpiresIn) * time.Second),
	}

	if err := saveSession(c.store, session); err != nil {
		return Session{}, err
	}

	return session, nil
}

// Logout revokes the stored token when there is one and always wipes the store.
func (c *Client) Logout(ctx context.Context) error {
	session, err := loadSession(c.store)
	if err == nil && session.AccessToken != "" {
		if err = c.do(ctx, http.MethodPost, "/v1/auth/logout", session.AccessToken, nil, nil); err != nil {
			log.Warn().Err(err).Msg("failed to revoke token, clearing local session anyway")
		}
	}

	return c.store.Clear()
}

// SearchFarmhouses lists active farmhouses matching query, e.g. location=Bogor&guests=4.
func (c *Client) SearchFarmhouses(ctx context.Context, query url.Values) (farmhouseDto.GetFarmhousesResponse, error) {
	var res farmhouseDto.GetFarmhousesResponse

	path := "/v1/farmhouses/"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	err := c.do(ctx, http.MethodGet, path, "", nil, &res)

	return res, err
}

// SubmitBookingRequest sends an enquiry, no account needed.
func (c *Client) SubmitBookingRequest(ctx context.Context, req requestDto.CreateRequest) (requestDto.BookingRequestResponse, error) {
	var res requestDto.BookingRequestResponse

	err := c.do(ctx, http.MethodPost, "/v1/booking-requests/", "", req, &res)

	return res, err
}

func (c *Client) session(ctx context.Context, token string) (authDto.SessionResponse, error) {
	var res authDto.SessionResponse

	err := c.do(ctx, http.MethodGet, "/v1/auth/session", token, nil, &res)

	return res, err
}

// do sends body as JSON and unwraps the {data} envelope into out.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	if token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	envelope := response.Data[json.RawMessage]{}
	if err = json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if envelope.Data == nil {
		return nil
	}

	if err = json.Unmarshal(*envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}

	return nil
}

func errorMessage(raw []byte, fallback string) string {
	var body struct {
		Error   *string `json:"error"`
		Message *string `json:"message"`
	}

	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Error != nil:
			return *body.Error
		case body.Message != nil:
			return *body.Message
		}
	}

	return fallback
}
