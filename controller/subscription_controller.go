// api/controller/subscription_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	registry_errors "github.com/medregistry/api/errors"
	"github.com/medregistry/api/model"
	"github.com/medregistry/api/service"
	"github.com/medregistry/api/util"
)

type SubscriptionController struct {
	subscriptionService service.ISubscriptionService
}

func NewSubscriptionController(subscriptionService service.ISubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
	}
}

// RegisterRoutes registers the API routes
func (sc *SubscriptionController) RegisterRoutes(r *gin.RouterGroup) {
	subscriptions := r.Group("/subscriptions")
	{
		subscriptions.POST("", sc.CreateSubscription)
		subscriptions.PUT("/:id", sc.UpdateSubscription)
		subscriptions.GET("/:id", sc.GetSubscription)
	}
	r.GET("/customers/:id/subscriptions", sc.ListCustomerSubscriptions)
}

// CreateSubscription endpoint
func (sc *SubscriptionController) CreateSubscription(c *gin.Context) {
	var subscription model.Subscription
	if err := c.ShouldBindJSON(&subscription); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid subscription data", err)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", registry_errors.ErrUnauthorized)
		return
	}

	createdSubscription, err := sc.subscriptionService.CreateSubscription(c, subscription, actorID)
	if err != nil {
		if errors.Is(err, registry_errors.ErrDatabaseOperation) {
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		} else {
			util.RespondWithError(c, http.StatusBadRequest, "Failed to create subscription", err)
		}
		return
	}

	c.JSON(http.StatusCreated, createdSubscription)
}

// UpdateSubscription endpoint
func (sc *SubscriptionController) UpdateSubscription(c *gin.Context) {
	subscriptionID := c.Param("id")
	var subscription model.Subscription
	if err := c.ShouldBindJSON(&subscription); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid subscription data", err)
		return
	}
	subscription.ID = subscriptionID
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedSubscription, err := sc.subscriptionService.UpdateSubscription(c, subscription, actorID)
	if err != nil {
		if errors.Is(err, registry_errors.ErrSubscriptionNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Subscription not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update subscription", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedSubscription)
}

// GetSubscription endpoint
func (sc *SubscriptionController) GetSubscription(c *gin.Context) {
	subscriptionID := c.Param("id")

	subscription, err := sc.subscriptionService.GetSubscription(c, subscriptionID)
	if err != nil {
		if errors.Is(err, registry_errors.ErrSubscriptionNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Subscription not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get subscription", err)
		}
		return
	}

	c.JSON(http.StatusOK, subscription)
}

// ListCustomerSubscriptions endpoint
func (sc *SubscriptionController) ListCustomerSubscriptions(c *gin.Context) {
	customerID := c.Param("id")

	subscriptions, err := sc.subscriptionService.ListCustomerSubscriptions(c, customerID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list subscriptions", err)
		return
	}

	c.JSON(http.StatusOK, subscriptions)
}
