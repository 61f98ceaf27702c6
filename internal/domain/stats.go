package domain

// AdminStats is the dashboard snapshot returned to administrators.
type AdminStats struct {
	TotalUsers     int64
	TotalBookings  int64
	RecentBookings []Booking
	RecentUsers    []User
}
