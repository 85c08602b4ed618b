package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixora-app/fixora/internal/infrastructure/ratelimit"
	"github.com/fixora-app/fixora/internal/shared/logger"
	"github.com/fixora-app/fixora/internal/shared/utils"
)

// RateLimiter throttles a route group per client IP. It guards login and
// registration.
type RateLimiter struct {
	limiter    ratelimit.Limiter
	scope      string
	retryAfter time.Duration
	logger     logger.Interface
}

// NewRateLimiter returns a pass-through limiter when limiter is nil.
func NewRateLimiter(limiter ratelimit.Limiter, scope string, retryAfter time.Duration, logger logger.Interface) *RateLimiter {
	if retryAfter < time.Second {
		retryAfter = time.Second
	}
	return &RateLimiter{
		limiter:    limiter,
		scope:      scope,
		retryAfter: retryAfter,
		logger:     logger,
	}
}

// Limit lets requests through when the backing store is unreachable.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limiter == nil {
			c.Next()
			return
		}

		key := rl.scope + ":" + c.ClientIP()
		allowed, err := rl.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", fmt.Sprintf("%d", int(rl.retryAfter.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		remaining, err := rl.limiter.Remaining(c.Request.Context(), key)
		if err != nil {
			rl.logger.Debugw("failed to read remaining rate limit", "scope", rl.scope, "error", err)
		} else if remaining >= 0 {
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		}

		c.Next()
	}
}
