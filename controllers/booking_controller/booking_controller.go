package booking_controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rideon/rental/logger"
	"github.com/rideon/rental/models/booking_models"
	"github.com/rideon/rental/models/shared_models"
	"github.com/rideon/rental/services/booking_service"
	"github.com/rideon/rental/utils"
)

type BookingController struct {
	Service *booking_service.BookingService
}

func NewBookingController(service *booking_service.BookingService) *BookingController {
	return &BookingController{Service: service}
}

type CreateBookingRequest struct {
	CustomerID    int64  `json:"customer_id"`
	VehicleID     int64  `json:"vehicle_id" binding:"required"`
	RentStartDate string `json:"rent_start_date" binding:"required"`
	RentEndDate   string `json:"rent_end_date" binding:"required"`
}

type UpdateBookingRequest struct {
	Status string `json:"status" binding:"required,oneof=returned cancelled"`
}

// CreateBooking books a vehicle. The customer is the caller; admins
// may book on behalf of another customer by passing customer_id.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	callerID, callerRole, err := utils.GetCaller(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	customerID := callerID
	if req.CustomerID != 0 && callerRole == shared_models.RoleAdmin {
		customerID = req.CustomerID
	}

	start, err := time.Parse(booking_models.DateLayout, req.RentStartDate)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid rent_start_date, expected YYYY-MM-DD", err)
		return
	}
	end, err := time.Parse(booking_models.DateLayout, req.RentEndDate)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid rent_end_date, expected YYYY-MM-DD", err)
		return
	}
	if !end.After(start) {
		utils.Fail(c, http.StatusBadRequest, "rent_end_date must be after rent_start_date", booking_service.ErrInvalidDateRange)
		return
	}

	detail, err := bc.Service.CreateBooking(c.Request.Context(), customerID, req.VehicleID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, booking_service.ErrVehicleNotFound):
			utils.Fail(c, http.StatusNotFound, "Vehicle not found", err)
		case errors.Is(err, booking_service.ErrVehicleUnavailable):
			utils.Fail(c, http.StatusBadRequest, "Vehicle is not available for booking", err)
		case errors.Is(err, booking_service.ErrInvalidDateRange):
			utils.Fail(c, http.StatusBadRequest, "Invalid date range", err)
		default:
			logger.ErrorLogger.Errorf("Failed to create booking for customer %d: %v", callerID, err)
			utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		}
		return
	}

	utils.OK(c, http.StatusCreated, "Booking created successfully", detail)
}

// GetBookings lists bookings scoped to the caller's role: admins see
// every booking with customer details, customers see only their own.
func (bc *BookingController) GetBookings(c *gin.Context) {
	callerID, callerRole, err := utils.GetCaller(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	bookings, err := bc.Service.ListBookings(c.Request.Context(), callerID, callerRole)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list bookings for %s %d: %v", callerRole, callerID, err)
		utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	if len(bookings) == 0 {
		message := "No bookings found"
		if callerRole != shared_models.RoleAdmin {
			message = "You have no bookings yet"
		}
		utils.OK(c, http.StatusOK, message, []booking_models.BookingDetail{})
		return
	}

	utils.OK(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// UpdateBooking transitions a booking to returned or cancelled.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid booking id", err)
		return
	}

	callerID, callerRole, err := utils.GetCaller(c)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	detail, err := bc.Service.UpdateBookingStatus(c.Request.Context(), bookingID, req.Status, callerID, callerRole)
	if err != nil {
		switch {
		case errors.Is(err, booking_service.ErrBookingNotFound):
			utils.Fail(c, http.StatusNotFound, "Booking not found", err)
		case errors.Is(err, booking_service.ErrNotBookingOwner):
			utils.Fail(c, http.StatusForbidden, "You can only update your own bookings", err)
		case errors.Is(err, booking_service.ErrStatusNotAllowed):
			utils.Fail(c, http.StatusForbidden, "You are not allowed to set this status", err)
		case errors.Is(err, booking_service.ErrCancellationClosed):
			utils.Fail(c, http.StatusBadRequest, "Bookings can only be cancelled before the rental start date", err)
		case errors.Is(err, booking_service.ErrBookingClosed):
			utils.Fail(c, http.StatusBadRequest, "Booking is already closed", err)
		default:
			logger.ErrorLogger.Errorf("Failed to update booking %d: %v", bookingID, err)
			utils.Fail(c, http.StatusInternalServerError, "Internal Server Error", err)
		}
		return
	}

	message := "Booking cancelled successfully"
	if req.Status == booking_models.StatusReturned {
		message = "Booking marked as returned"
	}
	utils.OK(c, http.StatusOK, message, detail)
}
