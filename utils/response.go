package utils

import "github.com/gin-gonic/gin"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  string `json:"errors,omitempty"`
}

func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func Fail(c *gin.Context, status int, message string, err error) {
	resp := Response{Success: false, Message: message}
	if err != nil {
		resp.Errors = err.Error()
	}
	c.JSON(status, resp)
}
