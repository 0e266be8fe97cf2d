package middlewares

import (
	"fmt"
	"net/http"

	"coverpost_api/logs"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
)

// Turns a panic in any handler into a logged 500 JSON response
func RecoveryMiddleware(logger logs.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log(logging.Entry{
			Severity: logging.Critical,
			Payload:  fmt.Sprintf("Recovered from panic: %v", recovered),
			Labels:   map[string]string{"route": c.Request.URL.Path},
		})

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred"})
	})
}
