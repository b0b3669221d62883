// api/middleware/concurrency.go

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/medregistry/api/logging"
	"github.com/medregistry/api/ratelimit"
)

// concurrencyBackoff is the flat retry suggestion on concurrency rejection.
// Unlike the rate window there is no reset timestamp to compute it from; the
// slot frees whenever some in-flight mutation finishes.
const concurrencyBackoff = 5

// ConcurrencyLimiter bounds in-flight mutating operations per caller. Reads
// pass through untouched. The release runs via defer around the rest of the
// chain, so it fires on success, handler error, panic, and client abort
// alike; a leaked slot would permanently shrink the caller's budget.
func ConcurrencyLimiter(tracker *ratelimit.Tracker, skipPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isMutating(c.Request.Method) || skipPath(c.Request.URL.Path, skipPrefixes) {
			c.Next()
			return
		}

		identity, role := CallerIdentity(c)
		release, ok := tracker.Acquire(identity, role)
		if !ok {
			logger.Warn("Concurrent operation limit exceeded",
				zap.String("identity", identity),
				zap.String("role", role),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "concurrency_limit_exceeded",
				"message":    "Too many operations in progress, retry shortly",
				"resetAfter": concurrencyBackoff,
			})
			c.Abort()
			return
		}
		defer release()

		c.Next()
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
