package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

var (
	rlMu    sync.Mutex
	clients = make(map[string]*clientInfo)
)

// SimpleRateLimit is an in-process fixed-window per-IP limiter, used when no
// Redis is configured.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rlMu.Lock()
		ci, ok := clients[ip]
		now := time.Now()
		if !ok || now.Sub(ci.last) > window {
			clients[ip] = &clientInfo{last: now, count: 1}
			rlMu.Unlock()
			c.Next()
			return
		}
		ci.count++
		blocked := ci.count > maxRequests
		rlMu.Unlock()

		if blocked {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
