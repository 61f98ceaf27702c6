package dto

import (
	"strings"
	"time"

	"github.com/brainswarm/booking-api/internal/domain"
)

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"

// SignUpRequest payload for new users.
type SignUpRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50,excludes=@"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
}

// SignInRequest payload for login. Email carries either an email address or
// a username; Username is accepted as an alias.
type SignInRequest struct {
	Email    string `json:"email" validate:"required_without=Username"`
	Username string `json:"username" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`
}

// Identifier returns the login name the client supplied.
func (r SignInRequest) Identifier() string {
	if s := strings.TrimSpace(r.Email); s != "" {
		return s
	}
	return strings.TrimSpace(r.Username)
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FullName  *string     `json:"full_name"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}

// TokenResponse standard response for auth endpoints.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// NewUserResponse maps a domain user, never exposing the password hash.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponses maps a slice, returning an empty (not nil) slice.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// NewTokenResponse builds the sign-up/sign-in response body.
func NewTokenResponse(token string, u *domain.User) TokenResponse {
	return TokenResponse{AccessToken: token, TokenType: TokenTypeBearer, User: NewUserResponse(u)}
}
