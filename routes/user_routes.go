package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rideon/rental/config/db"
	"github.com/rideon/rental/controllers/user_controller"
	"github.com/rideon/rental/middlewares/auth"
	"github.com/rideon/rental/models/shared_models"
)

func RegisterUserRoutes(router *gin.Engine) {
	userController := user_controller.NewUserController(db.DB)

	api := router.Group("/api/v1/users")
	api.Use(auth.AuthMiddleware())
	{
		api.GET("/", auth.RequireRoles(shared_models.RoleAdmin), userController.GetUsers)
		api.PUT("/:id", userController.UpdateUser)
		api.DELETE("/:id", auth.RequireRoles(shared_models.RoleAdmin), userController.DeleteUser)
	}
}
