package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rideon/rental/config/db"
	"github.com/rideon/rental/controllers/auth_controller"
	middleware "github.com/rideon/rental/middlewares"
)

func RegisterAuthRoutes(router *gin.Engine) {
	authController := auth_controller.NewAuthController(db.DB)

	api := router.Group("/api/v1/auth")
	{
		api.POST("/signup", middleware.NewRateLimiter("10-1h", "signup"), authController.Register)
		api.POST("/signin", middleware.CombinedRateLimiter("signin", "5-1m", "30-1h"), authController.Login)
		api.POST("/refresh-token", middleware.NewRateLimiter("30-1h", "refresh_token"), authController.RefreshToken)
		api.POST("/logout", authController.Logout)
	}
}
