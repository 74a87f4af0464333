package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rideon/rental/config/db"
	"github.com/rideon/rental/controllers/vehicle_controller"
	"github.com/rideon/rental/middlewares/auth"
	"github.com/rideon/rental/models/shared_models"
)

func RegisterVehicleRoutes(router *gin.Engine) {
	vehicleController := vehicle_controller.NewVehicleController(db.DB)

	api := router.Group("/api/v1/vehicles")
	{
		api.GET("/", vehicleController.GetVehicles)
		api.GET("/:id", vehicleController.GetVehicle)
	}

	admin := router.Group("/api/v1/vehicles")
	admin.Use(auth.AuthMiddleware(), auth.RequireRoles(shared_models.RoleAdmin))
	{
		admin.POST("/", vehicleController.CreateVehicle)
		admin.PUT("/:id", vehicleController.UpdateVehicle)
		admin.DELETE("/:id", vehicleController.DeleteVehicle)
	}
}
