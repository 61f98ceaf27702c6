package domain

import "time"

// Role is the single authorization level held by a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account that can sign in and own bookings.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FullName     *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
