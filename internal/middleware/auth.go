package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finbook/internal/auth"
	"finbook/internal/logger"
)

// UserIDKey is the Gin context key the verified subject ID is stored under.
const UserIDKey = "userID"

// Auth verifies the bearer credential on every request and sets the subject
// ID in the context. Requests with a missing, malformed, or invalid
// credential are rejected with 401 before reaching any handler.
func Auth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		uid, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			logger.Get().Warnw("token verification failed",
				"error", err.Error(),
				"path", c.Request.URL.Path,
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, uid)
		c.Next()
	}
}
