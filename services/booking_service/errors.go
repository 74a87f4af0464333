package booking_service

import "errors"

// Fault taxonomy of the booking engine. Controllers map these onto HTTP
// status codes; anything else that escapes is a storage failure.
var (
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrVehicleUnavailable = errors.New("vehicle is not available for booking")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNotBookingOwner    = errors.New("you are not authorized to update this booking")
	ErrCancellationClosed = errors.New("cancellation is only allowed before the start date")
	ErrBookingClosed      = errors.New("booking is already returned or cancelled")
	ErrStatusNotAllowed   = errors.New("requested status is not permitted for this role")
	ErrInvalidDateRange   = errors.New("rent_end_date must be after rent_start_date")
)
