package booking_service

import (
	"context"
	"time"

	"github.com/rideon/rental/models/booking_models"
	"github.com/rideon/rental/models/vehicle_models"
)

// Store is the persistence port of the booking engine. Every method
// that touches both a booking and its vehicle's availability must be
// atomic: either both rows change or neither does.
type Store interface {
	// VehicleByID returns ErrVehicleNotFound when the vehicle is absent.
	VehicleByID(ctx context.Context, id int64) (*vehicle_models.Vehicle, error)

	// CreateBooking inserts the booking and flips its vehicle from
	// available to booked in one transaction. When the vehicle is no
	// longer available it returns ErrVehicleUnavailable; concurrent
	// creates against the same vehicle must never both succeed.
	CreateBooking(ctx context.Context, b *booking_models.Booking) error

	// BookingByID returns ErrBookingNotFound when the booking is absent.
	BookingByID(ctx context.Context, id int64) (*booking_models.Booking, error)

	// UpdateBookingStatus moves an active booking to status and, when
	// releaseVehicle is set, flips its vehicle back to available in the
	// same transaction. A booking already in a terminal state yields
	// ErrBookingClosed.
	UpdateBookingStatus(ctx context.Context, id int64, status string, releaseVehicle bool) (*booking_models.Booking, error)

	// ReleaseExpired marks every active booking whose end date is
	// strictly before today as returned and frees the vehicles, all in
	// one transaction. Returns the number of bookings swept.
	ReleaseExpired(ctx context.Context, today time.Time) (int, error)

	ListAllBookings(ctx context.Context) ([]booking_models.BookingDetail, error)
	ListCustomerBookings(ctx context.Context, customerID int64) ([]booking_models.BookingDetail, error)
}
