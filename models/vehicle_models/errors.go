package vehicle_models

import "errors"

var (
	ErrVehicleNotFound          = errors.New("vehicle not found")
	ErrRegistrationTaken        = errors.New("registration number is already in use")
	ErrVehicleHasActiveBookings = errors.New("cannot delete vehicle with active bookings")
)
