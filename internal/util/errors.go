package util

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed API request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// SafeErrorResponse logs the detailed error and responds with userMessage.
// The detail is only exposed outside release mode.
func SafeErrorResponse(c *gin.Context, statusCode int, userMessage string, err error) {
	response := ErrorResponse{Message: userMessage}

	if err != nil {
		log.Printf("[ERROR] %s: %v", c.Request.URL.Path, err)
		if os.Getenv("GIN_MODE") != "release" {
			response.Error = err.Error()
		}
	}

	c.AbortWithStatusJSON(statusCode, response)
}
