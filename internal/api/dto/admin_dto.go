package dto

import "github.com/brainswarm/booking-api/internal/domain"

// AdminStatsResponse is the admin dashboard payload.
type AdminStatsResponse struct {
	TotalUsers     int64             `json:"total_users"`
	TotalBookings  int64             `json:"total_bookings"`
	RecentBookings []BookingResponse `json:"recent_bookings"`
	RecentUsers    []UserResponse    `json:"recent_users"`
}

func NewAdminStatsResponse(s *domain.AdminStats) AdminStatsResponse {
	return AdminStatsResponse{
		TotalUsers:     s.TotalUsers,
		TotalBookings:  s.TotalBookings,
		RecentBookings: NewBookingResponses(s.RecentBookings),
		RecentUsers:    NewUserResponses(s.RecentUsers),
	}
}
