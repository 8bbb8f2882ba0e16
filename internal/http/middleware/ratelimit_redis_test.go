package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// Integration-style test: runs only when REDIS_ADDR is set.
func TestRedisRateLimitIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}

	InitRedisRateLimiter(addr, os.Getenv("REDIS_PASSWORD"), 0)

	const max = 2
	window := 2 * time.Second

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", RedisRateLimit(max, window), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	for i := 0; i < max; i++ {
		res, err := http.Get(srv.URL + "/test")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status %d; want 200", i+1, res.StatusCode)
		}
	}

	res, err := http.Get(srv.URL + "/test")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("over-limit request: status %d; want 429", res.StatusCode)
	}
}
