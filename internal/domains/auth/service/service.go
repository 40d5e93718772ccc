package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"farmstay/config"
	"farmstay/infras/jwt"
	"farmstay/infras/oauth"
	"farmstay/infras/otel"
	"farmstay/internal/domains/auth/model/dto"
	userModel "farmstay/internal/domains/user/model"
	userRepo "farmstay/internal/domains/user/repository"
	"farmstay/permissions"
	"farmstay/shared"
	"farmstay/shared/cache"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	"farmstay/shared/failure"
	"farmstay/shared/password"
	gRepo "farmstay/shared/repository"
	"farmstay/shared/timezone"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheMagicLink  = "auth:magic"
	cacheOAuthState = "auth:state"
	cacheRevoked    = "auth:revoked"

	oauthStateTTLSeconds = 600
	codeBytes            = 32
	marker               = "1"
)

var errInvalidCredentials = failure.BadRequestFromString("invalid email or password")

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.LoginResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
	// RequestMagicLink answers the same way for unknown emails.
	RequestMagicLink(ctx context.Context, req dto.MagicLinkRequest) error
	OAuthURL(ctx context.Context) (dto.OAuthURLResponse, error)
	Callback(ctx context.Context, req dto.CallbackRequest) (dto.LoginResponse, error)
	Session(ctx context.Context) (dto.SessionResponse, error)
	Logout(ctx context.Context) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	cache      cache.RedisCache
	provider   oauth.Provider
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, cache cache.RedisCache, provider oauth.Provider) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		cache:      cache,
		provider:   provider,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Email = normalizeEmail(req.Email)

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString("email already registered")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(permissions.ResolveRole(s.cfg.App.AdminEmail, req.Email, req.Role), hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.BadRequestFromString("email already registered")
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")

	return s.issue(ctx, user)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := emailFilter(normalizeEmail(req.Email))

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, errInvalidCredentials
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, errInvalidCredentials
	}

	if !user.IsActive {
		return res, failure.Forbidden("user account is deactivated")
	}

	res, err = s.issue(ctx, user)
	if err != nil {
		return res, err
	}

	s.touchLastLogin(ctx, user.ID)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token")
	}

	revoked, err := s.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return res, err
	}

	if revoked {
		return res, failure.Unauthorized("refresh token has been revoked")
	}

	user, err := s.activeUser(ctx, claims.UserID)
	if err != nil {
		return res, err
	}

	return s.issue(ctx, user)
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.Actor(ctx)
	if actor == constant.ContextGuest {
		return failure.Unauthorized("authentication required")
	}

	filter := shared.FilterByID(actor, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return failure.NotFound("user not found")
	}

	if user.Password == "" {
		return failure.BadRequestFromString("account has no password, sign in with google or a magic link")
	}

	if err = password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, actor)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) RequestMagicLink(ctx context.Context, req dto.MagicLinkRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RequestMagicLink")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	email := normalizeEmail(req.Email)

	user, err := s.userRepo.Get(ctx, emailFilter(email), userModel.FieldID, userModel.FieldIsActive)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" || !user.IsActive {
		log.Info().Str("email", email).Msg("magic link requested for unknown or inactive account")

		return nil
	}

	code, err := randomCode()
	if err != nil {
		return err
	}

	if err = s.cache.Save(ctx, shared.BuildCacheKey(cacheMagicLink, code), user.ID, s.cfg.App.MagicLink.TTLSeconds); err != nil {
		log.Error().Err(err).Msg("failed to save magic link code")

		return fmt.Errorf("failed to save magic link code: %w", err)
	}

	// Delivery is out of scope, the link goes to the log.
	log.Info().
		Str("email", email).
		Str("link", s.cfg.App.PublicURL+"/v1/auth/callback?code="+code).
		Int("ttl_seconds", s.cfg.App.MagicLink.TTLSeconds).
		Msg("magic link issued")

	return nil
}

func (s *serviceImpl) OAuthURL(ctx context.Context) (res dto.OAuthURLResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.OAuthURL")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !s.provider.Enabled() {
		return res, failure.BadRequestFromString("google sign in is not configured")
	}

	state, err := randomCode()
	if err != nil {
		return res, err
	}

	if err = s.cache.Save(ctx, shared.BuildCacheKey(cacheOAuthState, state), marker, oauthStateTTLSeconds); err != nil {
		log.Error().Err(err).Msg("failed to save oauth state")

		return res, fmt.Errorf("failed to save oauth state: %w", err)
	}

	res.URL = s.provider.AuthCodeURL(state)

	return res, nil
}

func (s *serviceImpl) Callback(ctx context.Context, req dto.CallbackRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Callback")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Code == "" {
		return res, failure.BadRequestFromString("missing code")
	}

	var user userModel.User

	if req.State != "" {
		scope.SetAttribute("auth.flow", "oauth")
		user, err = s.oauthUser(ctx, req)
	} else {
		scope.SetAttribute("auth.flow", "magic_link")
		user, err = s.magicLinkUser(ctx, req.Code)
	}

	if err != nil {
		return res, err
	}

	res, err = s.issue(ctx, user)
	if err != nil {
		return res, err
	}

	s.touchLastLogin(ctx, user.ID)

	return res, nil
}

func (s *serviceImpl) magicLinkUser(ctx context.Context, code string) (userModel.User, error) {
	var userID string

	if err := s.cache.Pop(ctx, shared.BuildCacheKey(cacheMagicLink, code), &userID); err != nil {
		if cache.IsMiss(err) {
			return userModel.User{}, failure.BadRequestFromString("link is invalid or has expired")
		}

		log.Error().Err(err).Msg("failed to read magic link code")

		return userModel.User{}, fmt.Errorf("failed to read magic link code: %w", err)
	}

	return s.activeUser(ctx, userID)
}

func (s *serviceImpl) oauthUser(ctx context.Context, req dto.CallbackRequest) (user userModel.User, err error) {
	var value string

	if err = s.cache.Pop(ctx, shared.BuildCacheKey(cacheOAuthState, req.State), &value); err != nil {
		if cache.IsMiss(err) {
			return user, failure.BadRequestFromString("invalid oauth state")
		}

		log.Error().Err(err).Msg("failed to read oauth state")

		return user, fmt.Errorf("failed to read oauth state: %w", err)
	}

	identity, err := s.provider.Exchange(ctx, req.Code)
	if err != nil {
		log.Warn().Err(err).Msg("failed to exchange oauth code")

		return user, failure.BadRequestFromString("google sign in failed")
	}

	email := normalizeEmail(identity.Email)

	user, err = s.userRepo.Get(ctx, gDto.NewFilterGroup(gDto.Filter{
		Field: userModel.FieldGoogleID, Value: identity.Subject, Operator: gDto.FilterOperatorEq, Table: userModel.TableName,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by google id")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		user, err = s.userRepo.Get(ctx, emailFilter(email))
		if err != nil {
			log.Error().Err(err).Msg("failed to get user by email")

			return user, fmt.Errorf("failed to get user: %w", err)
		}
	}

	switch {
	case user.ID == "":
		user, err = s.createOAuthUser(ctx, email, identity)
		if err != nil {
			return user, err
		}
	case user.GoogleID == nil:
		fields := shared.TransformFields(dto.LinkGoogleRequest{GoogleID: &identity.Subject}, user.ID)
		if err = s.userRepo.Update(ctx, fields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
			log.Error().Err(err).Str("user_id", user.ID).Msg("failed to link google account")

			return user, fmt.Errorf("failed to link google account: %w", err)
		}

		user.GoogleID = &identity.Subject
	}

	if !user.IsActive {
		return user, failure.Forbidden("user account is deactivated")
	}

	return user, nil
}

func (s *serviceImpl) createOAuthUser(ctx context.Context, email string, identity oauth.Identity) (userModel.User, error) {
	req := dto.RegisterRequest{Email: email, FullName: identity.Name}
	created := req.ToUserModel(permissions.ResolveRole(s.cfg.App.AdminEmail, email, constant.RoleVisitor), "")
	created.GoogleID = &identity.Subject

	if err := s.userRepo.Insert(ctx, created); err != nil {
		log.Error().Err(err).Msg("failed to create oauth user")

		return created, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", created.ID).Msg("user registered through google")

	return created, nil
}

func (s *serviceImpl) Session(ctx context.Context) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Session")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.Actor(ctx)
	if actor == constant.ContextGuest {
		return res, failure.Unauthorized("authentication required")
	}

	user, err := s.activeUser(ctx, actor)
	if err != nil {
		return res, err
	}

	res = dto.SessionResponse{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     permissions.ResolveRole(s.cfg.App.AdminEmail, user.Email, user.Role),
		IsActive: user.IsActive,
	}

	if exp, ok := ctx.Value(constant.ContextKeyTokenExp).(time.Time); ok {
		res.ExpiresIn = max(int64(time.Until(exp).Seconds()), 0)
	}

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	if tokenID == "" {
		return failure.Unauthorized("authentication required")
	}

	// Refresh tokens carry the same id and outlive the access token.
	ttl := s.cfg.JWT.RefreshExpireMin * constant.MinutesToSeconds
	if ttl <= 0 {
		ttl = s.cfg.JWT.AccessExpireMin * constant.MinutesToSeconds
	}

	if err = s.cache.Save(ctx, shared.BuildCacheKey(cacheRevoked, tokenID), marker, ttl); err != nil {
		log.Error().Err(err).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (s *serviceImpl) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	var value string

	err := s.cache.Get(ctx, shared.BuildCacheKey(cacheRevoked, tokenID), &value)
	if err == nil {
		return true, nil
	}

	if cache.IsMiss(err) {
		return false, nil
	}

	log.Error().Err(err).Msg("failed to check token revocation")

	return false, fmt.Errorf("failed to check token revocation: %w", err)
}

func (s *serviceImpl) activeUser(ctx context.Context, id string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return user, failure.Unauthorized("user no longer exists")
	}

	if !user.IsActive {
		return user, failure.Forbidden("user account is deactivated")
	}

	return user, nil
}

func (s *serviceImpl) issue(ctx context.Context, user userModel.User) (res dto.LoginResponse, err error) {
	role := permissions.ResolveRole(s.cfg.App.AdminEmail, user.Email, user.Role)

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)
	res.Role = role
	res.RedirectTo = permissions.HomePath(role)

	return res, nil
}

func (s *serviceImpl) touchLastLogin(ctx context.Context, userID string) {
	updatedFields := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}, userID)

	if err := s.userRepo.Update(ctx, updatedFields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to update last login")
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.NewFilterGroup(gDto.Filter{
		Field:    userModel.FieldEmail,
		Operator: gDto.FilterOperatorEq,
		Value:    email,
		Table:    userModel.TableName,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomCode() (string, error) {
	buf := make([]byte, codeBytes)

	if _, err := rand.Read(buf); err != nil {
		log.Error().Err(err).Msg("failed to generate random code")

		return "", fmt.Errorf("failed to generate random code: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
