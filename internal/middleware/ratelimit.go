package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"jobboard/internal/logger"
	"jobboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const limiterCleanupInterval = 10 * time.Minute

// RateLimiter holds one token bucket per client IP.
// Idle buckets are swept when new clients arrive, so no background goroutine
// outlives the router.
type RateLimiter struct {
	name      string
	limiters  map[string]*rate.Limiter
	mu        sync.RWMutex
	rate      rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func NewRateLimiter(name string, rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		name:      name,
		limiters:  make(map[string]*rate.Limiter),
		rate:      rate.Limit(rps),
		burst:     burst,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[ip]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists = rl.limiters[ip]
	if exists {
		return limiter
	}

	if now := rl.now(); now.Sub(rl.lastSweep) >= limiterCleanupInterval {
		rl.sweep()
		rl.lastSweep = now
	}

	limiter = rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[ip] = limiter
	return limiter
}

// sweep drops limiters whose bucket has refilled, i.e. idle clients.
// Callers hold rl.mu.
func (rl *RateLimiter) sweep() {
	for ip, limiter := range rl.limiters {
		if limiter.Tokens() >= float64(rl.burst) {
			delete(rl.limiters, ip)
		}
	}
}

func (rl *RateLimiter) retryAfter() string {
	if rl.rate <= 0 {
		return "60"
	}
	return strconv.Itoa(int(math.Ceil(1 / float64(rl.rate))))
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := rl.getLimiter(ip)

		if !l.Allow() {
			logger.Warn("Rate limit exceeded",
				zap.String("request_id", GetRequestID(c)),
				zap.String("limiter", rl.name),
				zap.String("ip", ip),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)

			c.Header("Retry-After", rl.retryAfter())
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

func RateLimitMiddleware(name string, rps float64, burst int) gin.HandlerFunc {
	return NewRateLimiter(name, rps, burst).Middleware()
}
