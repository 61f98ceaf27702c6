package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brainswarm/booking-api/internal/domain"
	"github.com/brainswarm/booking-api/internal/persistence"
)

// BookingRepository encapsulates booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	Count(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Booking, error)
}

type bookingRepository struct {
	db persistence.DBTX
}

// NewBookingRepository instantiates repository.
func NewBookingRepository(db persistence.DBTX) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, user_id, service_type, preferred_date, message, phone, status, created_at`

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (user_id, service_type, preferred_date, message, phone, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	if err := r.db.QueryRow(ctx, query,
		booking.UserID,
		booking.ServiceType,
		booking.PreferredDate,
		booking.Message,
		booking.Phone,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id=$1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return booking, err
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	const query = `
        SELECT ` + bookingColumns + `
        FROM bookings WHERE user_id=$1
        ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

func (r *bookingRepository) ListRecent(ctx context.Context, limit int) ([]domain.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC, id DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *bookingRepository) list(ctx context.Context, query string, arg any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var booking domain.Booking
	if err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ServiceType,
		&booking.PreferredDate,
		&booking.Message,
		&booking.Phone,
		&booking.Status,
		&booking.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}
