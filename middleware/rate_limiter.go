package middleware

import (
	"net/http"
	"sync"
	"time"

	"portal/metrics"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a token-bucket limiter keyed by an arbitrary string
// (client IP for the API group, user ID for quiz submissions).
type RateLimiter struct {
	buckets  map[string]*bucket
	mu       sync.Mutex
	rate     int           // Tokens refilled per interval
	burst    int           // Burst capacity
	interval time.Duration // Refill interval
}

type bucket struct {
	tokens      int
	lastUpdated time.Time
}

func NewRateLimiter(rate int, burst int) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		burst:    burst,
		interval: time.Minute,
	}
	go rl.cleanup()
	return rl
}

// Allow consumes one token for the key if available
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[key]
	if !exists {
		b = &bucket{tokens: rl.burst, lastUpdated: time.Now()}
		rl.buckets[key] = b
	}

	// Refill tokens
	now := time.Now()
	refill := int(now.Sub(b.lastUpdated)/rl.interval) * rl.rate
	if refill > 0 {
		b.tokens += refill
		if b.tokens > rl.burst {
			b.tokens = rl.burst
		}
		b.lastUpdated = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// cleanup drops buckets that have been idle long enough to be full again
func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(10 * time.Minute)
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if time.Since(b.lastUpdated) > 2*rl.interval*time.Duration(rl.burst) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimiterMiddleware limits requests per client IP
func RateLimiterMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !rl.Allow(key) {
			metrics.RateLimiterRejections.WithLabelValues(key).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// UserRateLimiterMiddleware limits requests per authenticated user. It must
// run after AuthMiddleware; requests without a user fall back to the IP key.
func UserRateLimiterMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, exists := c.Get(ContextUserIDKey); exists {
			key = userID.(string)
		}
		if !rl.Allow(key) {
			metrics.RateLimiterRejections.WithLabelValues(key).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
