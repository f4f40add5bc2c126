package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finbook/internal/logger"
)

// RequestIDKey is the Gin context key the per-request ID is stored under.
// Error logging pulls it back out so request and error lines correlate.
const RequestIDKey = "requestID"

// RequestID returns the ID assigned to this request, or "" when the logging
// middleware is not installed.
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// RequestLogging returns a Gin middleware that logs each request with a unique
// request ID, method, path, status code, latency, and client IP using Zap.
// The ID is stored on the context and echoed in the X-Request-ID header.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New().String()
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		latency := time.Since(start)
		log := logger.Get()
		log.Infow("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
