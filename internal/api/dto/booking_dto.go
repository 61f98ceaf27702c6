package dto

import (
	"time"

	"github.com/brainswarm/booking-api/internal/domain"
)

// CreateBookingRequest payload. PreferredDate is free text.
type CreateBookingRequest struct {
	ServiceType   string  `json:"service_type" validate:"required,max=100"`
	PreferredDate string  `json:"preferred_date" validate:"required,max=100"`
	Message       *string `json:"message" validate:"omitempty,max=2000"`
	Phone         *string `json:"phone" validate:"omitempty,max=40"`
}

// BookingResponse is the public view of a booking.
type BookingResponse struct {
	ID            int64                `json:"id"`
	UserID        int64                `json:"user_id"`
	ServiceType   string               `json:"service_type"`
	PreferredDate string               `json:"preferred_date"`
	Message       *string              `json:"message"`
	Phone         *string              `json:"phone"`
	Status        domain.BookingStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

func NewBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		ServiceType:   b.ServiceType,
		PreferredDate: b.PreferredDate,
		Message:       b.Message,
		Phone:         b.Phone,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}

func NewBookingResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, NewBookingResponse(&bookings[i]))
	}
	return out
}
