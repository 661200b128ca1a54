package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"innova-chat/logger"
)

const headerRequestID = "X-Request-Id"

// RequestLogging assigns each inbound request an id (reusing the caller's
// when present), echoes it on the response, and logs method/path/status
// with duration once the request finishes.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.Request.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Writer.Header().Set(headerRequestID, requestID)

		c.Next()

		logger.InfoWithFields("http request", logger.Fields{
			"request_id":  requestID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
}
