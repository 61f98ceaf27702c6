package handlers

import (
	"errors"
	"net/http"

	"github.com/brainswarm/booking-api/internal/domain"
	apperrors "github.com/brainswarm/booking-api/pkg/util/errorutil"
)

// translateError maps service sentinels onto HTTP-facing DomainErrors.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUsernameTaken):
		return apperrors.NewConflict("Username already registered", nil)
	case errors.Is(err, domain.ErrEmailTaken):
		return apperrors.NewConflict("Email already registered", nil)
	case errors.Is(err, domain.ErrUserExists):
		return apperrors.NewConflict("User already exists", nil)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.NewUnauthorized("Invalid email or password")
	case errors.Is(err, domain.ErrAccountDisabled):
		return apperrors.NewUnauthorized("Account is disabled")
	case errors.Is(err, domain.ErrTooManyAttempts):
		return apperrors.NewDomainError("TOO_MANY_ATTEMPTS", "Too many failed sign-in attempts, try again later", http.StatusTooManyRequests, nil)
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NewNotFound("User", nil)
	case errors.Is(err, domain.ErrBookingNotFound):
		return apperrors.NewNotFound("Booking", nil)
	}

	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de
	}
	return apperrors.NewInternalError(err)
}
