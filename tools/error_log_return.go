package tools

import (
	"coverpost_api/logs"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
)

// Logs err and aborts the request with a structured JSON error body
func LogError(logger logs.Logger, c *gin.Context, status int, err error) {
	logger.Log(logging.Entry{
		Severity: logging.Error,
		Payload:  err.Error(),
		Labels:   map[string]string{"status": "error", "route": c.Request.URL.Path},
	})

	c.AbortWithStatusJSON(status, gin.H{
		"error": err.Error(),
	})
}
