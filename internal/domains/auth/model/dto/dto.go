package dto

import (
	"farmstay/infras/jwt"
	userModel "farmstay/internal/domains/user/model"
	"farmstay/shared/constant"
	gModel "farmstay/shared/model"
	"farmstay/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string  `json:"email"           validate:"required,email"`
	Password string  `json:"password"        validate:"required,min=8"`
	FullName string  `json:"full_name"       validate:"required,min=2,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Role     string  `json:"role,omitempty"  validate:"omitempty,oneof=visitor owner"`
}

// ToUserModel stores role as given, falling back to visitor.
func (r *RegisterRequest) ToUserModel(role, hashedPassword string) userModel.User {
	if role == "" {
		role = constant.RoleVisitor
	}

	return userModel.User{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: hashedPassword,
		FullName: r.FullName,
		Phone:    r.Phone,
		Role:     role,
		IsActive: true,
		Metadata: gModel.NewMetadata(constant.ContextGuest, timezone.Now()),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LinkGoogleRequest struct {
	GoogleID  *string   `db:"google_id"`
	LastLogin time.Time `db:"last_login"`
}

type LoginResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
	Role             string `json:"role"`
	RedirectTo       string `json:"redirect_to"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
	l.RefreshExpiresIn = tokenPair.RefreshExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}

type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CallbackRequest carries the query of /auth/callback. Without State the code is a magic link code.
type CallbackRequest struct {
	Code  string
	State string
}

type SessionResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	ExpiresIn int64  `json:"expires_in"`
}

type OAuthURLResponse struct {
	URL string `json:"url"`
}
