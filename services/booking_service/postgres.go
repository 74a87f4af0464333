package booking_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rideon/rental/models/booking_models"
	"github.com/rideon/rental/models/vehicle_models"
)

// PostgresStore implements Store over a pgx pool. All cross-entity
// writes run inside a transaction so a booking and its vehicle's
// availability can never drift apart.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) VehicleByID(ctx context.Context, id int64) (*vehicle_models.Vehicle, error) {
	vehicle, err := vehicle_models.GetVehicleByID(ctx, s.pool, id)
	if err != nil {
		if errors.Is(err, vehicle_models.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *PostgresStore) CreateBooking(ctx context.Context, b *booking_models.Booking) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking: %w", err)
	}
	defer tx.Rollback(ctx)

	// Conditional update serializes concurrent creates on the same
	// vehicle: only one caller sees a row flip under it.
	tag, err := tx.Exec(ctx, `
		UPDATE vehicles
		SET availability_status = $1, updated_at = NOW()
		WHERE id = $2 AND availability_status = $3
	`, vehicle_models.StatusBooked, b.VehicleID, vehicle_models.StatusAvailable)
	if err != nil {
		return fmt.Errorf("reserve vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVehicleUnavailable
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, b.CustomerID, b.VehicleID, b.RentStartDate, b.RentEndDate, b.TotalPrice, b.Status).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking: %w", err)
	}
	return nil
}

func (s *PostgresStore) BookingByID(ctx context.Context, id int64) (*booking_models.Booking, error) {
	var b booking_models.Booking
	err := s.pool.QueryRow(ctx, `
		SELECT id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status
		FROM bookings
		WHERE id = $1
	`, id).Scan(&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("fetch booking: %w", err)
	}
	return &b, nil
}

func (s *PostgresStore) UpdateBookingStatus(ctx context.Context, id int64, status string, releaseVehicle bool) (*booking_models.Booking, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin status update: %w", err)
	}
	defer tx.Rollback(ctx)

	// The status = 'active' predicate makes the terminal-state guard
	// hold under concurrency, not just against the engine's earlier read.
	var b booking_models.Booking
	err = tx.QueryRow(ctx, `
		UPDATE bookings
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status
	`, status, id, booking_models.StatusActive).
		Scan(&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var current string
			err := tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&current)
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrBookingNotFound
			}
			if err != nil {
				return nil, fmt.Errorf("fetch booking status: %w", err)
			}
			return nil, ErrBookingClosed
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	if releaseVehicle {
		_, err := tx.Exec(ctx, `
			UPDATE vehicles
			SET availability_status = $1, updated_at = NOW()
			WHERE id = $2
		`, vehicle_models.StatusAvailable, b.VehicleID)
		if err != nil {
			return nil, fmt.Errorf("release vehicle: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit status update: %w", err)
	}
	return &b, nil
}

func (s *PostgresStore) ReleaseExpired(ctx context.Context, today time.Time) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin expiry sweep: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		UPDATE bookings
		SET status = $1
		WHERE status = $2 AND rent_end_date < $3
		RETURNING vehicle_id
	`, booking_models.StatusReturned, booking_models.StatusActive, today)
	if err != nil {
		return 0, fmt.Errorf("sweep bookings: %w", err)
	}

	var vehicleIDs []int64
	for rows.Next() {
		var vehicleID int64
		if err := rows.Scan(&vehicleID); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan swept booking: %w", err)
		}
		vehicleIDs = append(vehicleIDs, vehicleID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("sweep bookings: %w", err)
	}

	if len(vehicleIDs) > 0 {
		_, err := tx.Exec(ctx, `
			UPDATE vehicles
			SET availability_status = $1, updated_at = NOW()
			WHERE id = ANY($2)
		`, vehicle_models.StatusAvailable, vehicleIDs)
		if err != nil {
			return 0, fmt.Errorf("release swept vehicles: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit expiry sweep: %w", err)
	}
	return len(vehicleIDs), nil
}

func (s *PostgresStore) ListAllBookings(ctx context.Context) ([]booking_models.BookingDetail, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date, b.total_price, b.status,
		       COALESCE(u.name, ''), COALESCE(u.email, ''),
		       COALESCE(v.vehicle_name, ''), COALESCE(v.registration_number, '')
		FROM bookings b
		LEFT JOIN users u ON b.customer_id = u.id
		LEFT JOIN vehicles v ON b.vehicle_id = v.id
		ORDER BY b.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var details []booking_models.BookingDetail
	for rows.Next() {
		var (
			b        booking_models.Booking
			customer booking_models.CustomerSummary
			vehicle  booking_models.VehicleSummary
		)
		err := rows.Scan(
			&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status,
			&customer.Name, &customer.Email,
			&vehicle.VehicleName, &vehicle.RegistrationNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}

		detail := booking_models.Detail(&b)
		detail.Customer = &customer
		detail.Vehicle = &vehicle
		details = append(details, detail)
	}
	return details, rows.Err()
}

func (s *PostgresStore) ListCustomerBookings(ctx context.Context, customerID int64) ([]booking_models.BookingDetail, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.id, b.vehicle_id, b.rent_start_date, b.rent_end_date, b.total_price, b.status,
		       COALESCE(v.vehicle_name, ''), COALESCE(v.registration_number, ''), COALESCE(v.type, '')
		FROM bookings b
		LEFT JOIN vehicles v ON b.vehicle_id = v.id
		WHERE b.customer_id = $1
		ORDER BY b.id DESC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer bookings: %w", err)
	}
	defer rows.Close()

	var details []booking_models.BookingDetail
	for rows.Next() {
		var (
			b       booking_models.Booking
			vehicle booking_models.VehicleSummary
		)
		err := rows.Scan(
			&b.ID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status,
			&vehicle.VehicleName, &vehicle.RegistrationNumber, &vehicle.Type,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}

		detail := booking_models.Detail(&b)
		detail.Vehicle = &vehicle
		details = append(details, detail)
	}
	return details, rows.Err()
}
