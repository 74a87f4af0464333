package booking_service

import (
	"context"
	"fmt"
	"time"

	"github.com/rideon/rental/logger"
	"github.com/rideon/rental/models/booking_models"
	"github.com/rideon/rental/models/shared_models"
	"github.com/rideon/rental/models/vehicle_models"
)

// BookingService owns the booking lifecycle: price computation,
// availability coupling, status transitions and the lazy expiry sweep.
// Storage is injected so tests can run against a fake.
type BookingService struct {
	store Store
	now   func() time.Time
}

func NewBookingService(store Store) *BookingService {
	return &BookingService{store: store, now: time.Now}
}

// dateOnly discards the time-of-day component.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RentalDays returns the whole calendar days between start and end,
// rounding partial days up.
func RentalDays(start, end time.Time) int64 {
	hours := dateOnly(end).Sub(dateOnly(start)).Hours()
	days := int64(hours / 24)
	if float64(days*24) < hours {
		days++
	}
	return days
}

// allowTransition is the single authorization policy for status
// changes: customers may only cancel, admins may cancel or return.
func allowTransition(callerRole, newStatus string) error {
	switch newStatus {
	case booking_models.StatusCancelled:
		return nil
	case booking_models.StatusReturned:
		if callerRole == shared_models.RoleAdmin {
			return nil
		}
		return ErrStatusNotAllowed
	default:
		return ErrStatusNotAllowed
	}
}

// CreateBooking books a vehicle for the date range. The handler has
// already validated the range, but the duration is re-derived here so a
// bad caller cannot produce a zero- or negative-priced booking.
func (s *BookingService) CreateBooking(ctx context.Context, customerID, vehicleID int64, start, end time.Time) (*booking_models.BookingDetail, error) {
	start = dateOnly(start)
	end = dateOnly(end)

	days := RentalDays(start, end)
	if days <= 0 {
		return nil, ErrInvalidDateRange
	}

	vehicle, err := s.store.VehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.AvailabilityStatus != vehicle_models.StatusAvailable {
		return nil, ErrVehicleUnavailable
	}

	booking := &booking_models.Booking{
		CustomerID:    customerID,
		VehicleID:     vehicleID,
		RentStartDate: start,
		RentEndDate:   end,
		TotalPrice:    days * vehicle.DailyRentPrice,
		Status:        booking_models.StatusActive,
	}

	// The store re-checks availability under the transaction; losing a
	// race against a concurrent create surfaces as ErrVehicleUnavailable.
	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	logger.InfoLogger.Infof("Booking %d created: customer %d, vehicle %d, %d day(s)",
		booking.ID, customerID, vehicleID, days)

	detail := booking_models.Detail(booking)
	detail.Vehicle = &booking_models.VehicleSummary{
		VehicleName:    vehicle.VehicleName,
		DailyRentPrice: vehicle.DailyRentPrice,
	}
	return &detail, nil
}

// ListBookings returns the caller's view of the ledger. Overdue active
// bookings are swept to returned first, so the listing never shows an
// active booking whose end date has passed.
func (s *BookingService) ListBookings(ctx context.Context, callerID int64, callerRole string) ([]booking_models.BookingDetail, error) {
	swept, err := s.store.ReleaseExpired(ctx, dateOnly(s.now()))
	if err != nil {
		return nil, fmt.Errorf("expiry sweep failed: %w", err)
	}
	if swept > 0 {
		logger.InfoLogger.Infof("Expiry sweep returned %d overdue booking(s)", swept)
	}

	if callerRole == shared_models.RoleAdmin {
		return s.store.ListAllBookings(ctx)
	}
	return s.store.ListCustomerBookings(ctx, callerID)
}

// UpdateBookingStatus transitions a booking to returned or cancelled.
// Customers may only cancel their own bookings and only strictly before
// the rental start date; nothing transitions out of a terminal state.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, bookingID int64, newStatus string, callerID int64, callerRole string) (*booking_models.BookingDetail, error) {
	if err := allowTransition(callerRole, newStatus); err != nil {
		return nil, err
	}

	booking, err := s.store.BookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if callerRole != shared_models.RoleAdmin && booking.CustomerID != callerID {
		return nil, ErrNotBookingOwner
	}

	if booking.Status != booking_models.StatusActive {
		return nil, ErrBookingClosed
	}

	if callerRole != shared_models.RoleAdmin && newStatus == booking_models.StatusCancelled {
		today := dateOnly(s.now())
		if !today.Before(dateOnly(booking.RentStartDate)) {
			return nil, ErrCancellationClosed
		}
	}

	releaseVehicle := newStatus == booking_models.StatusReturned
	updated, err := s.store.UpdateBookingStatus(ctx, bookingID, newStatus, releaseVehicle)
	if err != nil {
		return nil, err
	}

	logger.InfoLogger.Infof("Booking %d moved to %s by %s %d", bookingID, newStatus, callerRole, callerID)

	detail := booking_models.Detail(updated)
	if releaseVehicle {
		vehicle, err := s.store.VehicleByID(ctx, updated.VehicleID)
		if err != nil {
			return nil, err
		}
		detail.Vehicle = &booking_models.VehicleSummary{
			AvailabilityStatus: vehicle.AvailabilityStatus,
		}
	}
	return &detail, nil
}
