package domain

import "time"

// BookingStatus tracks where a service request is in its lifecycle. New
// bookings are always pending; nothing in this service moves them on.
type BookingStatus string

const BookingStatusPending BookingStatus = "pending"

// Booking is a service request owned by exactly one user.
type Booking struct {
	ID            int64
	UserID        int64
	ServiceType   string
	PreferredDate string
	Message       *string
	Phone         *string
	Status        BookingStatus
	CreatedAt     time.Time
}
