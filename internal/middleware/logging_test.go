package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestLogging(t *testing.T) {
	t.Run("assigns_request_id", func(t *testing.T) {
		var fromContext string

		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/test", func(c *gin.Context) {
			fromContext = RequestID(c)
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		header := rec.Header().Get("X-Request-ID")
		if header == "" {
			t.Fatal("expected X-Request-ID header")
		}
		if fromContext != header {
			t.Errorf("context ID %q does not match header %q", fromContext, header)
		}
	})

	t.Run("ids_are_unique_per_request", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		seen := make(map[string]bool)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			id := rec.Header().Get("X-Request-ID")
			if seen[id] {
				t.Fatalf("request ID %q repeated", id)
			}
			seen[id] = true
		}
	})

	t.Run("missing_middleware_yields_empty_id", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if got := RequestID(c); got != "" {
			t.Errorf("expected empty ID, got %q", got)
		}
	})
}
