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

// BookingUseCase is the subset of the booking service the handler needs.
type BookingUseCase interface {
	Create(ctx context.Context, userID int64, in service.CreateBookingInput) (*domain.Booking, error)
	ListMine(ctx context.Context, userID int64) ([]domain.Booking, error)
	Get(ctx context.Context, userID int64, isAdmin bool, bookingID int64) (*domain.Booking, error)
}

// BookingHandler serves the caller's bookings.
type BookingHandler struct {
	bookings  BookingUseCase
	validator *RequestValidator
}

// NewBookingHandler constructs handler.
func NewBookingHandler(bookings BookingUseCase, validator *RequestValidator) *BookingHandler {
	return &BookingHandler{bookings: bookings, validator: validator}
}

// Create handles POST /bookings/.
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validator.Validate(&req); err != nil {
		return err
	}

	booking, err := h.bookings.Create(c.UserContext(), identity.UserID, service.CreateBookingInput{
		ServiceType:   req.ServiceType,
		PreferredDate: req.PreferredDate,
		Message:       req.Message,
		Phone:         req.Phone,
	})
	if err != nil {
		return translateError(err)
	}
	return c.JSON(dto.NewBookingResponse(booking))
}

// List handles GET /bookings/.
func (h *BookingHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	bookings, err := h.bookings.ListMine(c.UserContext(), identity.UserID)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(dto.NewBookingResponses(bookings))
}

// Get handles GET /bookings/:id.
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("id must be a positive integer", nil)
	}

	booking, err := h.bookings.Get(c.UserContext(), identity.UserID, identity.IsAdmin(), int64(id))
	if err != nil {
		return translateError(err)
	}
	return c.JSON(dto.NewBookingResponse(booking))
}
