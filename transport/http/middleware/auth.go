package middleware

import (
	"context"
	"errors"
	"farmstay/config"
	"farmstay/infras/jwt"
	"farmstay/infras/otel"
	"farmstay/permissions"
	"farmstay/shared/constant"
	"farmstay/shared/failure"
	"farmstay/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

// Revocation reports whether a token id was logged out.
type Revocation interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// authRoleImpl implements the AuthRole interface
type authRoleImpl struct {
	jwtService jwt.JWT
	revocation Revocation
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

// NewAuthRoleMiddleware creates a new middleware instance
func NewAuthRoleMiddleware(jwtService jwt.JWT, revocation Revocation, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		revocation: revocation,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// Auth validates the bearer token or the access_token cookie.
// Public endpoints pass without one, but a valid token is still attached to the context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		skip, _ := ctx.Value(SkipAuthKey("skip")).(bool)
		if skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path := m.routePath(request)
		public := false
		if m.permission != nil {
			endpoint, _ := m.permission.FindPermissions(path, request.Method)
			public = m.permission.Skip || endpoint.Skip
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
			"auth.public":     public,
		})

		tokenString, err := tokenFromRequest(request)
		if err != nil {
			scope.End()

			if public {
				next.ServeHTTP(writer, request)

				return
			}

			response.WithError(writer, failure.Unauthorized(authHeaderMessage(err)))

			return
		}

		claims, err := m.claims(ctx, tokenString)
		if err != nil {
			scope.TraceError(err)
			scope.End()

			if public {
				next.ServeHTTP(writer, request)

				return
			}

			response.WithError(writer, err)

			return
		}

		scope.SetAttribute("user.id", claims.UserID)
		scope.End()

		next.ServeHTTP(writer, request.WithContext(WithClaims(ctx, claims)))
	})
}

func (m *authRoleImpl) claims(ctx context.Context, tokenString string) (*jwt.Claims, error) {
	claims, err := m.jwtService.ValidateToken(ctx, tokenString, jwt.AccessToken)
	if err != nil {
		var message string

		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			message = "Token has expired"
		case errors.Is(err, jwt.ErrInvalidToken):
			message = "Invalid token"
		case errors.Is(err, jwt.ErrInvalidClaim):
			message = "Invalid token claims"
		default:
			message = "Token validation failed"
		}

		return nil, failure.Unauthorized(message)
	}

	if claims.UserID == "" || claims.Email == "" {
		log.Error().Str("token_id", claims.TokenID).Msg("JWT claims: user id or email is empty")

		return nil, failure.Unauthorized("Invalid token claims")
	}

	revoked, err := m.revocation.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		// Redis outages do not lock everyone out.
		log.Warn().Err(err).Msg("failed to check token revocation")
	}

	if revoked {
		return nil, failure.Unauthorized("Token has been revoked")
	}

	return claims, nil
}

// RBAC checks if user has required role
// Requires prior authentication via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		skip, _ := ctx.Value(SkipAuthKey("skip")).(bool)
		if skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		// The admin email is an admin whatever the token says.
		email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
		storedRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)
		userRole := permissions.ResolveRole(m.cfg.App.AdminEmail, email, storedRole)

		if userRole != storedRole {
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, userRole)
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		permission, listed := m.permission.FindPermissions(m.routePath(request), request.Method)
		if !listed {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role": userRole,
				"reason":    "route_not_listed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		if !permission.Allows(userRole) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// APIKey for internal service-to-service authentication using API key
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), false)
		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			response.WithError(writer, failure.ForbiddenError)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.ContextSystem)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// WithClaims places the token claims where shared.Actor and shared.Role read them.
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

	if claims.ExpiresAt != nil {
		ctx = context.WithValue(ctx, constant.ContextKeyTokenExp, claims.ExpiresAt.Time)
	}

	return ctx
}

func (m *authRoleImpl) routePath(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}

func tokenFromRequest(request *http.Request) (string, error) {
	if header := request.Header.Get(constant.RequestHeaderAuthorization); header != "" {
		return jwt.ExtractTokenFromHeader(header) //nolint:wrapcheck
	}

	if cookie, err := request.Cookie(constant.CookieAccessToken); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", jwt.ErrMissingToken
}

func authHeaderMessage(err error) string {
	if errors.Is(err, jwt.ErrBearerFormat) {
		return "Invalid authorization header format"
	}

	return "Missing authorization header"
}
