package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/brainswarm/booking-api/internal/api/dto"
	"github.com/brainswarm/booking-api/internal/auth"
	"github.com/brainswarm/booking-api/internal/domain"
	"github.com/brainswarm/booking-api/internal/service"
	apperrors "github.com/brainswarm/booking-api/pkg/util/errorutil"
)

// AuthUseCase is the subset of the auth service the handler needs.
type AuthUseCase interface {
	SignUp(ctx context.Context, in service.SignUpInput) (*service.AuthResult, error)
	SignIn(ctx context.Context, identifier, password string) (*service.AuthResult, error)
	Me(ctx context.Context, userID int64) (*domain.User, error)
}

// AuthHandler exposes sign-up, sign-in and the current-user endpoint.
type AuthHandler struct {
	auth      AuthUseCase
	validator *RequestValidator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService AuthUseCase, validator *RequestValidator) *AuthHandler {
	return &AuthHandler{auth: authService, validator: validator}
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Validate(&req); err != nil {
		return err
	}

	res, err := h.auth.SignUp(c.UserContext(), service.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return translateError(err)
	}
	return c.JSON(dto.NewTokenResponse(res.AccessToken, res.User))
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Validate(&req); err != nil {
		return err
	}

	res, err := h.auth.SignIn(c.UserContext(), req.Identifier(), req.Password)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(dto.NewTokenResponse(res.AccessToken, res.User))
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	user, err := h.auth.Me(c.UserContext(), identity.UserID)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(dto.NewUserResponse(user))
}
