// api/service/subscription_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medregistry/api/audit"
	"github.com/medregistry/api/cache"
	"github.com/medregistry/api/dao"
	logger "github.com/medregistry/api/logging"
	"github.com/medregistry/api/model"
	"github.com/medregistry/api/util"
)

type ISubscriptionService interface {
	CreateSubscription(ctx context.Context, subscription model.Subscription, actorID string) (*model.Subscription, error)
	UpdateSubscription(ctx context.Context, subscription model.Subscription, actorID string) (*model.Subscription, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*model.Subscription, error)
	ListCustomerSubscriptions(ctx context.Context, customerID string) ([]model.Subscription, error)
}

// SubscriptionService handles business logic for subscription operations
type SubscriptionService struct {
	subscriptionDAO dao.ISubscriptionDAO
	validationUtil  *util.ValidationUtil
	store           *cache.Store
	invalidator     *cache.Invalidator
	auditService    audit.Service
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

func NewSubscriptionService(
	subscriptionDAO dao.ISubscriptionDAO,
	validationUtil *util.ValidationUtil,
	store *cache.Store,
	invalidator *cache.Invalidator,
	auditService audit.Service,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *SubscriptionService {
	service := &SubscriptionService{
		subscriptionDAO: subscriptionDAO,
		validationUtil:  validationUtil,
		store:           store,
		invalidator:     invalidator,
		auditService:    auditService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	eventBus.Subscribe("subscription.created", service.handleSubscriptionEvent("created"))
	eventBus.Subscribe("subscription.updated", service.handleSubscriptionEvent("updated"))

	return service
}

func (s *SubscriptionService) handleSubscriptionEvent(changeType string) util.EventHandler {
	return func(ctx context.Context, event util.Event) error {
		subscription, ok := event.Payload.(model.Subscription)
		if !ok {
			logger.Error("Invalid subscription event payload", zap.Any("payload", event.Payload))
			return nil
		}
		return s.notificationSvc.NotifySubscriptionChange(ctx, changeType, subscription)
	}
}

func (s *SubscriptionService) CreateSubscription(ctx context.Context, subscription model.Subscription, actorID string) (*model.Subscription, error) {
	if err := s.validationUtil.ValidateSubscription(subscription); err != nil {
		return nil, err
	}

	if subscription.ID == "" {
		subscription.ID = uuid.NewString()
	}
	if subscription.Status == "" {
		subscription.Status = "active"
	}
	if subscription.StartsAt.IsZero() {
		subscription.StartsAt = time.Now()
	}
	subscription.CreatedAt = time.Now()
	subscription.UpdatedAt = subscription.CreatedAt

	if err := s.subscriptionDAO.CreateSubscription(ctx, subscription); err != nil {
		logger.Error("Error creating subscription", zap.Error(err), zap.String("actorID", actorID))
		return nil, err
	}

	s.invalidator.InvalidateCustomerSubscription(subscription.CustomerID, subscription.ID)
	cache.SetAs(s.store, cache.SubscriptionKey(subscription.ID), subscription, cache.TTLSubscription)

	s.recordAudit(ctx, actorID, "created", subscription)
	s.eventBus.Publish(ctx, "subscription.created", subscription)

	logger.Info("Subscription created successfully",
		zap.String("subscriptionID", subscription.ID),
		zap.String("customerID", subscription.CustomerID))
	return &subscription, nil
}

func (s *SubscriptionService) UpdateSubscription(ctx context.Context, subscription model.Subscription, actorID string) (*model.Subscription, error) {
	if err := s.validationUtil.ValidateSubscription(subscription); err != nil {
		return nil, err
	}

	subscription.UpdatedAt = time.Now()

	if err := s.subscriptionDAO.UpdateSubscription(ctx, subscription); err != nil {
		logger.Error("Error updating subscription", zap.Error(err), zap.String("subscriptionID", subscription.ID))
		return nil, err
	}

	s.invalidator.InvalidateCustomerSubscription(subscription.CustomerID, subscription.ID)
	cache.SetAs(s.store, cache.SubscriptionKey(subscription.ID), subscription, cache.TTLSubscription)

	s.recordAudit(ctx, actorID, "updated", subscription)
	s.eventBus.Publish(ctx, "subscription.updated", subscription)

	logger.Info("Subscription updated successfully",
		zap.String("subscriptionID", subscription.ID))
	return &subscription, nil
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, subscriptionID string) (*model.Subscription, error) {
	if cached, ok := cache.GetAs[model.Subscription](s.store, cache.SubscriptionKey(subscriptionID)); ok {
		return &cached, nil
	}

	subscription, err := s.subscriptionDAO.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	cache.SetAs(s.store, cache.SubscriptionKey(subscriptionID), *subscription, cache.TTLSubscription)
	return subscription, nil
}

func (s *SubscriptionService) ListCustomerSubscriptions(ctx context.Context, customerID string) ([]model.Subscription, error) {
	key := cache.CustomerSubscriptionsKey(customerID)
	if cached, ok := cache.GetAs[[]model.Subscription](s.store, key); ok {
		return cached, nil
	}

	subscriptions, err := s.subscriptionDAO.ListCustomerSubscriptions(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cache.SetAs(s.store, key, subscriptions, cache.TTLSubscriptionList)
	return subscriptions, nil
}

func (s *SubscriptionService) recordAudit(ctx context.Context, actorID, action string, subscription model.Subscription) {
	details, _ := json.Marshal(subscription)
	err := s.auditService.Record(ctx, audit.Entry{
		Timestamp:  time.Now(),
		ActorID:    actorID,
		Action:     action,
		EntityKind: string(cache.KindSubscription),
		EntityID:   subscription.ID,
		Details:    details,
	})
	if err != nil {
		logger.Warn("Failed to record subscription audit entry",
			zap.Error(err),
			zap.String("subscriptionID", subscription.ID))
	}
}
