// api/middleware/rate_limiter.go

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/medregistry/api/logging"
	"github.com/medregistry/api/ratelimit"
)

// RateLimiter gates every governed request against the caller's fixed-window
// quota. The X-RateLimit headers are set unconditionally so well-behaved
// clients can self-throttle before they are ever blocked.
func RateLimiter(tracker *ratelimit.Tracker, skipPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipPath(c.Request.URL.Path, skipPrefixes) {
			c.Next()
			return
		}

		identity, role := CallerIdentity(c)
		decision := tracker.RecordRequest(identity, role)

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			retryAfter := int(time.Until(decision.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Warn("Rate limit exceeded",
				zap.String("identity", identity),
				zap.String("role", role),
				zap.Int("limit", decision.Limit))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "rate_limit_exceeded",
				"message":    "Too many requests, slow down",
				"retryAfter": retryAfter,
				"resetTime":  decision.ResetAt.Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
