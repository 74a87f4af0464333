package booking_models

import "time"

// Booking lifecycle. A booking starts active and ends in exactly one of
// the two terminal states; there is no way back out of either.
const (
	StatusActive    = "active"
	StatusReturned  = "returned"
	StatusCancelled = "cancelled"
)

// DateLayout is the wire format for rental dates.
const DateLayout = "2006-01-02"

// Booking mirrors the bookings table. Dates carry date-only semantics;
// any time-of-day component is discarded on the way in.
type Booking struct {
	ID            int64     `json:"id"`
	CustomerID    int64     `json:"customer_id"`
	VehicleID     int64     `json:"vehicle_id"`
	RentStartDate time.Time `json:"rent_start_date"`
	RentEndDate   time.Time `json:"rent_end_date"`
	TotalPrice    int64     `json:"total_price"`
	Status        string    `json:"status"`
}

// CustomerSummary is the customer projection joined onto admin listings.
type CustomerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// VehicleSummary is the vehicle projection attached to booking
// responses. Which fields are populated depends on the endpoint.
type VehicleSummary struct {
	VehicleName        string `json:"vehicle_name,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	Type               string `json:"type,omitempty"`
	DailyRentPrice     int64  `json:"daily_rent_price,omitempty"`
	AvailabilityStatus string `json:"availability_status,omitempty"`
}

// BookingDetail is the response shape for booking endpoints: the
// persisted row plus read-only projections of its vehicle and, for
// admins, its customer. Dates are serialized as YYYY-MM-DD.
type BookingDetail struct {
	ID            int64            `json:"id"`
	CustomerID    int64            `json:"customer_id,omitempty"`
	VehicleID     int64            `json:"vehicle_id"`
	RentStartDate string           `json:"rent_start_date"`
	RentEndDate   string           `json:"rent_end_date"`
	TotalPrice    int64            `json:"total_price"`
	Status        string           `json:"status"`
	Customer      *CustomerSummary `json:"customer,omitempty"`
	Vehicle       *VehicleSummary  `json:"vehicle,omitempty"`
}

// Detail converts a persisted booking into its response shape.
func Detail(b *Booking) BookingDetail {
	return BookingDetail{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		VehicleID:     b.VehicleID,
		RentStartDate: FormatDate(b.RentStartDate),
		RentEndDate:   FormatDate(b.RentEndDate),
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
	}
}

// FormatDate renders a rental date for the wire.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
