package logger_middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rideon/rental/logger"
)

// GinLogger logs one line per request through the shared loggers.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := "%s %s -> %d (%s)"
		args := []any{c.Request.Method, c.Request.URL.Path, status, time.Since(start)}

		switch {
		case status >= 500:
			logger.ErrorLogger.Errorf(line, args...)
		case status >= 400:
			logger.WarnLogger.Warnf(line, args...)
		default:
			logger.InfoLogger.Infof(line, args...)
		}
	}
}
