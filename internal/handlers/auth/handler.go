package auth

import (
	"farmstay/config"
	"farmstay/infras/otel"
	"farmstay/internal/domains/auth/model/dto"
	"farmstay/internal/domains/auth/service"
	"farmstay/shared/constant"
	"farmstay/shared/failure"
	"farmstay/shared/validator"
	"farmstay/transport/http/response"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const loginPath = "/login"

type Handler struct {
	service service.Auth
	otel    otel.Otel
	cfg     *config.Config
}

func New(service service.Auth, otel otel.Otel, cfg *config.Config) Handler {
	return Handler{
		service: service,
		otel:    otel,
		cfg:     cfg,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/change-password", handler.ChangePassword)
		r.Post("/magic-link", handler.MagicLink)
		r.Get("/oauth/google", handler.GoogleLogin)
		r.Get("/callback", handler.Callback)
		r.Get("/session", handler.Session)
		r.Post("/logout", handler.Logout)
	})
}

// Register handles user registration
// @Summary Register a new user
// @Description Register a visitor or owner account and sign it in. The configured admin email registers as admin.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Data[dto.LoginResponse] "User registered successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User registered successfully")

	handler.setCookies(w, res)
	response.WithJSON(w, http.StatusCreated, res)
}

// Login handles user login
// @Summary Login a user
// @Description Login a user with the provided credentials.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse] "User logged in successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User logged in successfully")

	handler.setCookies(w, res)
	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken handles token refresh
// @Summary Refresh user token
// @Description Issue a new token pair. The refresh_token cookie is used when the body has none.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh Token Request"
// @Success 200 {object} response.Data[dto.LoginResponse] "Token refreshed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if cookie, err := r.Cookie(constant.CookieRefreshToken); err == nil && r.ContentLength <= 0 {
		req.RefreshToken = cookie.Value
	} else if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh token")

		response.WithError(w, err)

		return
	}

	handler.setCookies(w, res)
	response.WithJSON(w, http.StatusOK, res)
}

// ChangePassword handles password change
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message "Password changed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	req := dto.ChangePasswordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ChangePassword(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change password")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}

// MagicLink issues a one time sign in link
// @Summary Request a magic link
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.MagicLinkRequest true "Magic Link Request"
// @Success 202 {object} response.Message "Link sent when the email is registered"
// @Failure 400 {object} response.Error
// @Router /v1/auth/magic-link [post]
func (handler *Handler) MagicLink(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MagicLink")
	defer scope.End()

	req := dto.MagicLinkRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.RequestMagicLink(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to issue magic link")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusAccepted, "If the email is registered, a sign in link has been sent")
}

// GoogleLogin redirects to the Google consent screen
// @Summary Sign in with Google
// @Tags Auth
// @Success 307 "Redirect to the provider"
// @Failure 400 {object} response.Error
// @Router /v1/auth/oauth/google [get]
func (handler *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GoogleLogin")
	defer scope.End()

	res, err := handler.service.OAuthURL(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start google sign in")

		response.WithError(w, err)

		return
	}

	http.Redirect(w, r, res.URL, http.StatusTemporaryRedirect)
}

// Callback finishes an OAuth or magic link sign in
// @Summary Auth callback
// @Description Exchanges the code for a session and redirects to /admin, /dashboard or / by role.
// @Tags Auth
// @Param code query string true "OAuth or magic link code"
// @Param state query string false "OAuth state"
// @Success 302 "Redirect to the landing page of the role"
// @Router /v1/auth/callback [get]
func (handler *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Callback")
	defer scope.End()

	query := r.URL.Query()

	res, err := handler.service.Callback(ctx, dto.CallbackRequest{
		Code:  query.Get("code"),
		State: query.Get("state"),
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete sign in")

		message := "sign in failed"
		if !failure.Is(err, http.StatusInternalServerError) {
			message = err.Error()
		}

		http.Redirect(w, r, handler.frontendURL(loginPath)+"?error="+url.QueryEscape(message), http.StatusFound)

		return
	}

	handler.setCookies(w, res)
	http.Redirect(w, r, handler.frontendURL(res.RedirectTo), http.StatusFound)
}

// Session returns the current session
// @Summary Current session
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[dto.SessionResponse] "Session"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/auth/session [get]
// @Security BearerAuth
func (handler *Handler) Session(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Session")
	defer scope.End()

	res, err := handler.service.Session(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Logout revokes the current token
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message "Logged out"
// @Failure 401 {object} response.Error
// @Router /v1/auth/logout [post]
// @Security BearerAuth
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	if err := handler.service.Logout(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout")

		response.WithError(w, err)

		return
	}

	handler.clearCookies(w)
	response.WithMessage(w, http.StatusOK, "Logged out successfully")
}

func (handler *Handler) setCookies(w http.ResponseWriter, res dto.LoginResponse) {
	http.SetCookie(w, handler.cookie(constant.CookieAccessToken, res.AccessToken, int(res.ExpiresIn)))
	http.SetCookie(w, handler.cookie(constant.CookieRefreshToken, res.RefreshToken, int(res.RefreshExpiresIn)))
}

func (handler *Handler) clearCookies(w http.ResponseWriter) {
	http.SetCookie(w, handler.cookie(constant.CookieAccessToken, "", -1))
	http.SetCookie(w, handler.cookie(constant.CookieRefreshToken, "", -1))
}

func (handler *Handler) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   handler.cfg.App.Cookie.Domain,
		MaxAge:   maxAge,
		Secure:   handler.cfg.App.Cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (handler *Handler) frontendURL(path string) string {
	return strings.TrimSuffix(handler.cfg.App.FrontendURL, "/") + path
}
