package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brainswarm/booking-api/internal/domain"
	"github.com/brainswarm/booking-api/internal/persistence"
)

// StatsRepository reads the admin dashboard snapshot.
type StatsRepository interface {
	AdminStats(ctx context.Context, limit int) (*domain.AdminStats, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository instantiates repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

// AdminStats runs all four reads against one snapshot so counts and lists agree.
func (r *statsRepository) AdminStats(ctx context.Context, limit int) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	err := persistence.WithTx(ctx, r.pool, persistence.ReadOnlySnapshot, func(tx pgx.Tx) error {
		users := NewUserRepository(tx)
		bookings := NewBookingRepository(tx)

		var err error
		if stats.TotalUsers, err = users.Count(ctx); err != nil {
			return err
		}
		if stats.TotalBookings, err = bookings.Count(ctx); err != nil {
			return err
		}
		if stats.RecentBookings, err = bookings.ListRecent(ctx, limit); err != nil {
			return err
		}
		stats.RecentUsers, err = users.ListRecent(ctx, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
