package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rideon/rental/logger"
	"github.com/rideon/rental/models/shared_models"
	"github.com/rideon/rental/utils"
)

// AuthMiddleware validates the bearer token and stores the resolved
// caller identity and role in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Fail(c, http.StatusUnauthorized, "Unauthorized", errNoToken)
			c.Abort()
			return
		}

		var tokenString string
		if len(authHeader) > 7 && strings.ToLower(authHeader[:7]) == "bearer " {
			tokenString = authHeader[7:]
		} else {
			utils.Fail(c, http.StatusUnauthorized, "Unauthorized", errNoToken)
			c.Abort()
			return
		}

		claims, err := shared_models.ValidateAccessToken(tokenString)
		if err != nil {
			logger.WarnLogger.Warnf("Rejected token on %s: %v", c.FullPath(), err)
			utils.Fail(c, http.StatusUnauthorized, "Unauthorized", err)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireRoles rejects callers whose role claim is not in the allow
// list. It must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("user_role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		logger.WarnLogger.Warnf("Role %q refused on %s", role, c.FullPath())
		utils.Fail(c, http.StatusForbidden, "Forbidden", errForbiddenRole)
		c.Abort()
	}
}
