package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrTooManyAttempts    = errors.New("too many failed sign-in attempts")
)

// IsConflict reports whether err is one of the duplicate-account errors.
func IsConflict(err error) bool {
	return errors.Is(err, ErrUserExists) || errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken)
}
