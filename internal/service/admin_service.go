package service

import (
	"context"

	"github.com/brainswarm/booking-api/internal/domain"
	"github.com/brainswarm/booking-api/internal/repository"
)

// RecentItemsLimit caps the recent users and bookings in the dashboard.
const RecentItemsLimit = 10

// AdminService serves administrator-only reads.
type AdminService struct {
	stats repository.StatsRepository
}

// NewAdminService constructs the service.
func NewAdminService(stats repository.StatsRepository) *AdminService {
	return &AdminService{stats: stats}
}

// Stats returns totals and the most recent users and bookings.
func (s *AdminService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	return s.stats.AdminStats(ctx, RecentItemsLimit)
}
