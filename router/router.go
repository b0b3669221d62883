// api/router/router.go

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medregistry/api/controller"
	"github.com/medregistry/api/middleware"
	"github.com/medregistry/api/ratelimit"
)

func SetupRouter(
	controllers *controller.Controllers,
	tracker *ratelimit.Tracker,
	skipPrefixes []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.JWTAuth())
	router.Use(middleware.RateLimiter(tracker, skipPrefixes...))
	router.Use(middleware.ConcurrencyLimiter(tracker, skipPrefixes...))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	controllers.Customer.RegisterRoutes(api)
	controllers.Document.RegisterRoutes(api)
	controllers.Subscription.RegisterRoutes(api)
	controllers.Admin.RegisterRoutes(api)

	return router
}
