package vehicle_models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rideon/rental/logger"
)

// Availability states a vehicle can be in. Exactly one active booking
// may hold a vehicle booked at a time; the booking engine is the only
// writer of this flag during booking operations.
const (
	StatusAvailable = "available"
	StatusBooked    = "booked"
)

// Vehicle mirrors the vehicles table.
type Vehicle struct {
	ID                 int64     `json:"id"`
	VehicleName        string    `json:"vehicle_name"`
	Type               string    `json:"type"`
	RegistrationNumber string    `json:"registration_number"`
	DailyRentPrice     int64     `json:"daily_rent_price"`
	AvailabilityStatus string    `json:"availability_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// VehiclePatch enumerates the fields an update may change.
type VehiclePatch struct {
	VehicleName        *string `json:"vehicle_name"`
	Type               *string `json:"type"`
	RegistrationNumber *string `json:"registration_number"`
	DailyRentPrice     *int64  `json:"daily_rent_price"`
	AvailabilityStatus *string `json:"availability_status"`
}

// CreateVehicle adds a vehicle to the catalog, available by default.
func CreateVehicle(ctx context.Context, db *pgxpool.Pool, name, vehicleType, registration string, dailyRentPrice int64) (*Vehicle, error) {
	vehicle := &Vehicle{
		VehicleName:        name,
		Type:               vehicleType,
		RegistrationNumber: registration,
		DailyRentPrice:     dailyRentPrice,
		AvailabilityStatus: StatusAvailable,
	}

	query := `
		INSERT INTO vehicles (vehicle_name, type, registration_number, daily_rent_price, availability_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRow(ctx, query, name, vehicleType, registration, dailyRentPrice, StatusAvailable).
		Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return nil, ErrRegistrationTaken
		}
		logger.ErrorLogger.Errorf("Failed to insert vehicle %s: %v", registration, err)
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	logger.InfoLogger.Infof("Vehicle %d added to catalog", vehicle.ID)
	return vehicle, nil
}

func GetVehicleByID(ctx context.Context, db *pgxpool.Pool, id int64) (*Vehicle, error) {
	query := `
		SELECT id, vehicle_name, type, registration_number, daily_rent_price, availability_status, created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`
	return scanVehicle(db.QueryRow(ctx, query, id))
}

func scanVehicle(row pgx.Row) (*Vehicle, error) {
	var vehicle Vehicle
	err := row.Scan(
		&vehicle.ID,
		&vehicle.VehicleName,
		&vehicle.Type,
		&vehicle.RegistrationNumber,
		&vehicle.DailyRentPrice,
		&vehicle.AvailabilityStatus,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}
	return &vehicle, nil
}

// GetAllVehicles lists the catalog, newest first.
func GetAllVehicles(ctx context.Context, db *pgxpool.Pool) ([]Vehicle, error) {
	query := `
		SELECT id, vehicle_name, type, registration_number, daily_rent_price, availability_status, created_at, updated_at
		FROM vehicles
		ORDER BY id DESC
	`
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []Vehicle
	for rows.Next() {
		var vehicle Vehicle
		err := rows.Scan(
			&vehicle.ID,
			&vehicle.VehicleName,
			&vehicle.Type,
			&vehicle.RegistrationNumber,
			&vehicle.DailyRentPrice,
			&vehicle.AvailabilityStatus,
			&vehicle.CreatedAt,
			&vehicle.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, rows.Err()
}

// UpdateVehicle applies a typed patch. Only the fields present in the
// patch end up in the SET clause.
func UpdateVehicle(ctx context.Context, db *pgxpool.Pool, id int64, patch VehiclePatch) (*Vehicle, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{id}

	addClause := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.VehicleName != nil {
		addClause("vehicle_name", *patch.VehicleName)
	}
	if patch.Type != nil {
		addClause("type", *patch.Type)
	}
	if patch.RegistrationNumber != nil {
		addClause("registration_number", *patch.RegistrationNumber)
	}
	if patch.DailyRentPrice != nil {
		addClause("daily_rent_price", *patch.DailyRentPrice)
	}
	if patch.AvailabilityStatus != nil {
		addClause("availability_status", *patch.AvailabilityStatus)
	}

	query := fmt.Sprintf(`
		UPDATE vehicles
		SET %s
		WHERE id = $1
		RETURNING id, vehicle_name, type, registration_number, daily_rent_price, availability_status, created_at, updated_at
	`, strings.Join(setClauses, ", "))

	vehicle, err := scanVehicle(db.QueryRow(ctx, query, args...))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return nil, ErrRegistrationTaken
		}
		return nil, err
	}
	return vehicle, nil
}

// DeleteVehicle removes a vehicle unless an active booking still holds it.
func DeleteVehicle(ctx context.Context, db *pgxpool.Pool, id int64) error {
	var active bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE vehicle_id = $1 AND status = 'active')`, id,
	).Scan(&active)
	if err != nil {
		return fmt.Errorf("failed to check active bookings: %w", err)
	}
	if active {
		return ErrVehicleHasActiveBookings
	}

	tag, err := db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}

	logger.InfoLogger.Infof("Vehicle %d removed from catalog", id)
	return nil
}
