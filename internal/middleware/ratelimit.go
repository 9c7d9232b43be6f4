package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is an in-memory sliding window per client IP. Routes with
// different budgets (checkout, webhooks, the rest of the API) each get their
// own limiter so hammering one surface does not starve the others. Single
// instance only; a shared store would be needed behind a load balancer.
type RateLimiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	limit  int
	window time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		seen:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
}

// take records one request for key and reports whether it fits the window.
func (l *RateLimiter) take(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()

	live := l.seen[key][:0]
	for _, t := range l.seen[key] {
		if now.Sub(t) < l.window {
			live = append(live, t)
		}
	}
	if len(live) >= l.limit {
		l.seen[key] = live
		return false
	}
	l.seen[key] = append(live, now)

	if len(l.seen) > 4096 {
		l.sweep(now)
	}
	return true
}

// sweep drops keys whose whole window has expired. Runs under l.mu, only
// when the map has grown past the threshold in take.
func (l *RateLimiter) sweep(now time.Time) {
	for key, times := range l.seen {
		expired := true
		for _, t := range times {
			if now.Sub(t) < l.window {
				expired = false
				break
			}
		}
		if expired {
			delete(l.seen, key)
		}
	}
}

// RateLimit limits requests per client IP against the given limiter.
func RateLimit(l *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.take(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
