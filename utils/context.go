package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var ErrCallerNotFound = errors.New("authentication required: caller not found in context")

// GetCaller extracts the authenticated caller's id and role set by the
// auth middleware.
func GetCaller(c *gin.Context) (int64, string, error) {
	rawID, exists := c.Get("user_id")
	if !exists {
		return 0, "", ErrCallerNotFound
	}
	userID, ok := rawID.(int64)
	if !ok {
		return 0, "", ErrCallerNotFound
	}

	role := c.GetString("user_role")
	if role == "" {
		return 0, "", ErrCallerNotFound
	}
	return userID, role, nil
}
