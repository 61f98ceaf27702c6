package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/brainswarm/booking-api/internal/domain"
)

type memStore struct {
	mu       sync.Mutex
	users    []domain.User
	bookings []domain.Booking
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memUserRepo struct{ *memStore }

func (r memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.ID = int64(len(r.users) + 1)
	user.CreatedAt = r.tick()
	r.users = append(r.users, *user)
	return nil
}

func (r memUserRepo) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r memUserRepo) GetByLogin(ctx context.Context, identifier string) (*domain.User, error) {
	if u, err := r.GetByUsername(ctx, identifier); err == nil {
		return u, nil
	}
	return r.find(func(u domain.User) bool { return u.Email == identifier })
}

func (r memUserRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r memUserRepo) ListRecent(_ context.Context, limit int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]domain.User{}, r.users...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memUserRepo) setActive(id int64, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].IsActive = active
		}
	}
}

type memBookingRepo struct{ *memStore }

func (r memBookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = int64(len(r.bookings) + 1)
	booking.CreatedAt = r.tick()
	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r memBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r memBookingRepo) ListByUser(_ context.Context, userID int64) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Booking{}
	for i := len(r.bookings) - 1; i >= 0; i-- {
		if r.bookings[i].UserID == userID {
			out = append(out, r.bookings[i])
		}
	}
	return out, nil
}

func (r memBookingRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.bookings)), nil
}

func (r memBookingRepo) ListRecent(_ context.Context, limit int) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Booking{}
	for i := len(r.bookings) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.bookings[i])
	}
	return out, nil
}

type memStatsRepo struct{ *memStore }

func (r memStatsRepo) AdminStats(ctx context.Context, limit int) (*domain.AdminStats, error) {
	users, bookings := memUserRepo(r), memBookingRepo(r)
	var stats domain.AdminStats
	stats.TotalUsers, _ = users.Count(ctx)
	stats.TotalBookings, _ = bookings.Count(ctx)
	stats.RecentBookings, _ = bookings.ListRecent(ctx, limit)
	stats.RecentUsers, _ = users.ListRecent(ctx, limit)
	return &stats, nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []EmailMessage
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// blockingMailer holds Send until release is closed.
type blockingMailer struct {
	started chan struct{}
	release chan struct{}
	ctxErr  error
}

func (m *blockingMailer) Send(ctx context.Context, _ EmailMessage) error {
	close(m.started)
	<-m.release
	m.ctxErr = ctx.Err()
	return nil
}

type countingLimiter struct {
	failures map[string]int
	max      int
}

func newCountingLimiter(limit int) *countingLimiter {
	return &countingLimiter{failures: map[string]int{}, max: limit}
}

func (l *countingLimiter) Allow(_ context.Context, id string) bool     { return l.failures[id] < l.max }
func (l *countingLimiter) RecordFailure(_ context.Context, id string) { l.failures[id]++ }
func (l *countingLimiter) Reset(_ context.Context, id string)         { delete(l.failures, id) }
