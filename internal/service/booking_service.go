package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/brainswarm/booking-api/internal/domain"
	"github.com/brainswarm/booking-api/internal/events"
	"github.com/brainswarm/booking-api/internal/observability"
	"github.com/brainswarm/booking-api/internal/repository"
)

// CreateBookingInput describes a new service request.
type CreateBookingInput struct {
	ServiceType   string
	PreferredDate string
	Message       *string
	Phone         *string
}

// BookingService manages the caller's bookings.
type BookingService struct {
	bookings   repository.BookingRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// BookingDependencies wires the booking service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		bookings:   deps.BookingRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// Create stores a pending booking owned by userID.
func (s *BookingService) Create(ctx context.Context, userID int64, in CreateBookingInput) (*domain.Booking, error) {
	booking := &domain.Booking{
		UserID:        userID,
		ServiceType:   in.ServiceType,
		PreferredDate: in.PreferredDate,
		Message:       in.Message,
		Phone:         in.Phone,
		Status:        domain.BookingStatusPending,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.metrics.RecordBookingCreated(booking.ServiceType)
	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
		zap.String("service_type", booking.ServiceType))
	s.publishCreated(ctx, booking)
	return booking, nil
}

// ListMine returns userID's bookings, newest first.
func (s *BookingService) ListMine(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// Get returns a booking visible to the caller. Bookings owned by someone else
// are reported as not found unless the caller is an admin.
func (s *BookingService) Get(ctx context.Context, userID int64, isAdmin bool, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID && !isAdmin {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}

func (s *BookingService) publishCreated(ctx context.Context, booking *domain.Booking) {
	if s.dispatcher == nil {
		return
	}

	payload := events.BookingCreatedPayload{
		BookingID:     booking.ID,
		ServiceType:   booking.ServiceType,
		PreferredDate: booking.PreferredDate,
	}
	if s.users != nil {
		owner, err := s.users.GetByID(ctx, booking.UserID)
		switch {
		case err == nil:
			payload.Username = owner.Username
			payload.Email = owner.Email
		case !errors.Is(err, domain.ErrUserNotFound):
			s.logger.Warn("load booking owner", zap.Int64("user_id", booking.UserID), zap.Error(err))
		}
	}

	event := events.NewEvent(events.EventBookingCreated, booking.UserID, payload)
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.Error(fmt.Errorf("%s: %w", event.Type, err)))
	}
}
