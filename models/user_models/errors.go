package user_models

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailTaken            = errors.New("email is already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUserHasActiveBookings = errors.New("cannot delete user with active bookings")
)
