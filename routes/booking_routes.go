package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rideon/rental/config/db"
	"github.com/rideon/rental/controllers/booking_controller"
	"github.com/rideon/rental/middlewares/auth"
	"github.com/rideon/rental/models/shared_models"
	"github.com/rideon/rental/services/booking_service"
)

func RegisterBookingRoutes(router *gin.Engine) {
	service := booking_service.NewBookingService(booking_service.NewPostgresStore(db.DB))
	bookingController := booking_controller.NewBookingController(service)

	api := router.Group("/api/v1/bookings")
	api.Use(auth.AuthMiddleware(), auth.RequireRoles(shared_models.RoleAdmin, shared_models.RoleCustomer))
	{
		api.POST("/", bookingController.CreateBooking)
		api.GET("/", bookingController.GetBookings)
		api.PUT("/:id", bookingController.UpdateBooking)
	}
}
