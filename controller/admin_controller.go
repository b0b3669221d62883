// api/controller/admin_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medregistry/api/audit"
	"github.com/medregistry/api/cache"
	"github.com/medregistry/api/ratelimit"
	"github.com/medregistry/api/service"
	"github.com/medregistry/api/util"
	helper_util "github.com/medregistry/api/util/helper"
)

// AdminController exposes operator readouts and escape hatches for the
// governance layer. Authorization is gated outside this subsystem.
type AdminController struct {
	store        *cache.Store
	tracker      *ratelimit.Tracker
	statsService service.IStatsService
	auditService audit.Service
}

func NewAdminController(
	store *cache.Store,
	tracker *ratelimit.Tracker,
	statsService service.IStatsService,
	auditService audit.Service,
) *AdminController {
	return &AdminController{
		store:        store,
		tracker:      tracker,
		statsService: statsService,
		auditService: auditService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AdminController) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.GET("/cache/stats", ac.CacheStats)
		admin.POST("/cache/clear", ac.ClearCache)
		admin.GET("/ratelimit/stats", ac.RateLimitStats)
		admin.POST("/ratelimit/clear", ac.ClearRateLimits)
		admin.GET("/dashboard", ac.Dashboard)
		admin.GET("/audit", ac.QueryAudit)
	}
}

// CacheStats endpoint
func (ac *AdminController) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, ac.store.Stats())
}

// ClearCache endpoint
func (ac *AdminController) ClearCache(c *gin.Context) {
	ac.store.Clear()
	c.JSON(http.StatusOK, gin.H{"status": "cache cleared"})
}

// RateLimitStats endpoint
func (ac *AdminController) RateLimitStats(c *gin.Context) {
	c.JSON(http.StatusOK, ac.tracker.Stats())
}

// ClearRateLimits endpoint
func (ac *AdminController) ClearRateLimits(c *gin.Context) {
	ac.tracker.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "rate limits cleared"})
}

// Dashboard endpoint
func (ac *AdminController) Dashboard(c *gin.Context) {
	stats, err := ac.statsService.DashboardStats(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to compute dashboard stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// QueryAudit endpoint returns audit entries for an entity within a time
// range, cached briefly per entity to soften repeated operator refreshes.
func (ac *AdminController) QueryAudit(c *gin.Context) {
	entityID := c.Query("entityId")
	actorID := c.Query("actorId")

	from := time.Now().Add(-24 * time.Hour)
	to := time.Now()
	if v := c.Query("from"); v != "" {
		parsed, err := helper_util.ParseTime(v)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp", err)
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := helper_util.ParseTime(v)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp", err)
			return
		}
		to = parsed
	}

	cacheable := entityID != "" && actorID == "" && c.Query("from") == "" && c.Query("to") == ""
	if cacheable {
		if cached, ok := cache.GetAs[[]audit.Entry](ac.store, cache.AuditTrailKey(entityID)); ok {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	entries, err := ac.auditService.Query(c, from, to, actorID, entityID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit log", err)
		return
	}

	if cacheable {
		cache.SetAs(ac.store, cache.AuditTrailKey(entityID), entries, cache.TTLAuditTrail)
	}

	c.JSON(http.StatusOK, entries)
}
