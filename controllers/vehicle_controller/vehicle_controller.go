package vehicle_controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rideon/rental/logger"
	"github.com/rideon/rental/models/vehicle_models"
	"github.com/rideon/rental/utils"
)

type VehicleController struct {
	DB *pgxpool.Pool
}

func NewVehicleController(db *pgxpool.Pool) *VehicleController {
	return &VehicleController{DB: db}
}

type CreateVehicleRequest struct {
	VehicleName        string `json:"vehicle_name" binding:"required"`
	Type               string `json:"type" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	DailyRentPrice     int64  `json:"daily_rent_price" binding:"required,gt=0"`
}

type UpdateVehicleRequest struct {
	VehicleName        *string `json:"vehicle_name" binding:"omitempty,min=1"`
	Type               *string `json:"type" binding:"omitempty,min=1"`
	RegistrationNumber *string `json:"registration_number" binding:"omitempty,min=1"`
	DailyRentPrice     *int64  `json:"daily_rent_price" binding:"omitempty,gt=0"`
	AvailabilityStatus *string `json:"availability_status" binding:"omitempty,oneof=available booked"`
}

// CreateVehicle adds a vehicle to the fleet. Admin only.
func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	vehicle, err := vehicle_models.CreateVehicle(c.Request.Context(), vc.DB, req.VehicleName, req.Type, req.RegistrationNumber, req.DailyRentPrice)
	if err != nil {
		if errors.Is(err, vehicle_models.ErrRegistrationTaken) {
			utils.Fail(c, http.StatusConflict, "Registration number already exists", err)
			return
		}
		logger.ErrorLogger.Errorf("Failed to create vehicle: %v", err)
		utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.OK(c, http.StatusCreated, "Vehicle created successfully", vehicle)
}

// GetVehicles lists the whole fleet.
func (vc *VehicleController) GetVehicles(c *gin.Context) {
	vehicles, err := vehicle_models.GetAllVehicles(c.Request.Context(), vc.DB)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list vehicles: %v", err)
		utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.OK(c, http.StatusOK, "Vehicles retrieved successfully", vehicles)
}

// GetVehicle returns a single vehicle by id.
func (vc *VehicleController) GetVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid vehicle id", err)
		return
	}

	vehicle, err := vehicle_models.GetVehicleByID(c.Request.Context(), vc.DB, id)
	if err != nil {
		if errors.Is(err, vehicle_models.ErrVehicleNotFound) {
			utils.Fail(c, http.StatusNotFound, "Vehicle not found", err)
			return
		}
		logger.ErrorLogger.Errorf("Failed to fetch vehicle %d: %v", id, err)
		utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	utils.OK(c, http.StatusOK, "Vehicle retrieved successfully", vehicle)
}

// UpdateVehicle patches vehicle fields. Admin only.
func (vc *VehicleController) UpdateVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid vehicle id", err)
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if req.VehicleName == nil && req.Type == nil && req.RegistrationNumber == nil &&
		req.DailyRentPrice == nil && req.AvailabilityStatus == nil {
		utils.Fail(c, http.StatusBadRequest, "Nothing to update", nil)
		return
	}

	patch := vehicle_models.VehiclePatch{
		VehicleName:        req.VehicleName,
		Type:               req.Type,
		RegistrationNumber: req.RegistrationNumber,
		DailyRentPrice:     req.DailyRentPrice,
		AvailabilityStatus: req.AvailabilityStatus,
	}
	vehicle, err := vehicle_models.UpdateVehicle(c.Request.Context(), vc.DB, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, vehicle_models.ErrVehicleNotFound):
			utils.Fail(c, http.StatusNotFound, "Vehicle not found", err)
		case errors.Is(err, vehicle_models.ErrRegistrationTaken):
			utils.Fail(c, http.StatusConflict, "Registration number already exists", err)
		default:
			logger.ErrorLogger.Errorf("Failed to update vehicle %d: %v", id, err)
			utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		}
		return
	}

	utils.OK(c, http.StatusOK, "Vehicle updated successfully", vehicle)
}

// DeleteVehicle removes a vehicle. Admin only; refused while the
// vehicle is tied to active bookings.
func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid vehicle id", err)
		return
	}

	if err := vehicle_models.DeleteVehicle(c.Request.Context(), vc.DB, id); err != nil {
		switch {
		case errors.Is(err, vehicle_models.ErrVehicleNotFound):
			utils.Fail(c, http.StatusNotFound, "Vehicle not found", err)
		case errors.Is(err, vehicle_models.ErrVehicleHasActiveBookings):
			utils.Fail(c, http.StatusConflict, "Vehicle has active bookings", err)
		default:
			logger.ErrorLogger.Errorf("Failed to delete vehicle %d: %v", id, err)
			utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		}
		return
	}

	utils.OK(c, http.StatusOK, "Vehicle deleted successfully", nil)
}
