package oauth

//go:generate go run go.uber.org/mock/mockgen -source=./oauth.go -destination=./mocks/oauth_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"farmstay/config"
	"farmstay/infras/otel"
	"farmstay/shared/constant"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

var (
	ErrNotConfigured = errors.New("oauth provider is not configured")
	ErrNoEmail       = errors.New("oauth identity has no verified email")
)

// Identity is the subset of the provider profile used to find or create a user.
type Identity struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

type Provider interface {
	Enabled() bool
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Identity, error)
}

type googleProvider struct {
	oauthConfig *oauth2.Config
	userInfoURL string
	otel        otel.Otel
}

func NewGoogle(cfg *config.Config, otl otel.Otel) Provider {
	return newGoogle(cfg, otl, endpoints.Google, googleUserInfoURL)
}

func newGoogle(cfg *config.Config, otl otel.Otel, endpoint oauth2.Endpoint, userInfoURL string) *googleProvider {
	return &googleProvider{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.OAuth.Google.ClientID,
			ClientSecret: cfg.OAuth.Google.ClientSecret,
			RedirectURL:  cfg.OAuth.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoint,
		},
		userInfoURL: userInfoURL,
		otel:        otl,
	}
}

func (p *googleProvider) Enabled() bool {
	return p.oauthConfig.ClientID != "" && p.oauthConfig.ClientSecret != ""
}

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Exchange trades the authorization code for a token and reads the profile with it.
func (p *googleProvider) Exchange(ctx context.Context, code string) (res Identity, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".oauth.Exchange")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !p.Enabled() {
		return res, ErrNotConfigured
	}

	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("failed to exchange oauth code")

		return res, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return res, fmt.Errorf("failed to build userinfo request: %w", err)
	}

	resp, err := p.oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch oauth userinfo")

		return res, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return res, fmt.Errorf("failed to fetch userinfo: status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return res, fmt.Errorf("failed to decode userinfo: %w", err)
	}

	if res.Email == "" || !res.EmailVerified {
		return res, ErrNoEmail
	}

	scope.SetAttribute("oauth.subject", res.Subject)

	return res, nil
}
