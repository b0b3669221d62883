// api/service/customer_service.go
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

type ICustomerService interface {
	CreateCustomer(ctx context.Context, customer model.Customer, actorID string) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, customer model.Customer, actorID string) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, customerID, actorID string) error
	GetCustomer(ctx context.Context, customerID string) (*model.Customer, error)
	ListCustomers(ctx context.Context, limit, offset int) ([]model.Customer, error)
}

// CustomerService handles business logic for customer operations
type CustomerService struct {
	customerDAO     dao.ICustomerDAO
	validationUtil  *util.ValidationUtil
	store           *cache.Store
	invalidator     *cache.Invalidator
	auditService    audit.Service
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(
	customerDAO dao.ICustomerDAO,
	validationUtil *util.ValidationUtil,
	store *cache.Store,
	invalidator *cache.Invalidator,
	auditService audit.Service,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *CustomerService {
	service := &CustomerService{
		customerDAO:     customerDAO,
		validationUtil:  validationUtil,
		store:           store,
		invalidator:     invalidator,
		auditService:    auditService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	eventBus.Subscribe("customer.created", service.handleCustomerEvent("created"))
	eventBus.Subscribe("customer.updated", service.handleCustomerEvent("updated"))
	eventBus.Subscribe("customer.deleted", service.handleCustomerEvent("deleted"))

	return service
}

func (s *CustomerService) handleCustomerEvent(changeType string) util.EventHandler {
	return func(ctx context.Context, event util.Event) error {
		customer, ok := event.Payload.(model.Customer)
		if !ok {
			logger.Error("Invalid customer event payload", zap.Any("payload", event.Payload))
			return nil
		}
		return s.notificationSvc.NotifyCustomerChange(ctx, changeType, customer)
	}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, customer model.Customer, actorID string) (*model.Customer, error) {
	if err := s.validationUtil.ValidateCustomer(customer); err != nil {
		return nil, err
	}

	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	if customer.Status == "" {
		customer.Status = "active"
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt

	if err := s.customerDAO.CreateCustomer(ctx, customer); err != nil {
		logger.Error("Error creating customer", zap.Error(err), zap.String("actorID", actorID))
		return nil, err
	}

	// The write is committed; drop every view that embedded the old state
	// before anything else can read through the cache.
	s.invalidator.Invalidate(cache.KindCustomer, customer.ID)
	cache.SetAs(s.store, cache.CustomerKey(customer.ID), customer, cache.TTLCustomer)

	s.recordAudit(ctx, actorID, "created", customer)
	s.eventBus.Publish(ctx, "customer.created", customer)

	logger.Info("Customer created successfully",
		zap.String("customerID", customer.ID),
		zap.String("actorID", actorID))
	return &customer, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, customer model.Customer, actorID string) (*model.Customer, error) {
	if err := s.validationUtil.ValidateCustomer(customer); err != nil {
		return nil, err
	}

	customer.UpdatedAt = time.Now()

	if err := s.customerDAO.UpdateCustomer(ctx, customer); err != nil {
		logger.Error("Error updating customer", zap.Error(err), zap.String("customerID", customer.ID))
		return nil, err
	}

	s.invalidator.Invalidate(cache.KindCustomer, customer.ID)
	cache.SetAs(s.store, cache.CustomerKey(customer.ID), customer, cache.TTLCustomer)

	s.recordAudit(ctx, actorID, "updated", customer)
	s.eventBus.Publish(ctx, "customer.updated", customer)

	logger.Info("Customer updated successfully",
		zap.String("customerID", customer.ID),
		zap.String("actorID", actorID))
	return &customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID, actorID string) error {
	if err := s.customerDAO.DeleteCustomer(ctx, customerID); err != nil {
		logger.Error("Error deleting customer", zap.Error(err), zap.String("customerID", customerID))
		return err
	}

	s.invalidator.Invalidate(cache.KindCustomer, customerID)

	s.recordAudit(ctx, actorID, "deleted", model.Customer{ID: customerID})
	s.eventBus.Publish(ctx, "customer.deleted", model.Customer{ID: customerID})

	logger.Info("Customer deleted successfully",
		zap.String("customerID", customerID),
		zap.String("actorID", actorID))
	return nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	if cached, ok := cache.GetAs[model.Customer](s.store, cache.CustomerKey(customerID)); ok {
		return &cached, nil
	}

	customer, err := s.customerDAO.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cache.SetAs(s.store, cache.CustomerKey(customerID), *customer, cache.TTLCustomer)
	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	key := cache.CustomerListKey(limit, offset)
	if cached, ok := cache.GetAs[[]model.Customer](s.store, key); ok {
		return cached, nil
	}

	customers, err := s.customerDAO.ListCustomers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	cache.SetAs(s.store, key, customers, cache.TTLCustomerList)
	return customers, nil
}

func (s *CustomerService) recordAudit(ctx context.Context, actorID, action string, customer model.Customer) {
	details, _ := json.Marshal(customer)
	err := s.auditService.Record(ctx, audit.Entry{
		Timestamp:  time.Now(),
		ActorID:    actorID,
		Action:     action,
		EntityKind: string(cache.KindCustomer),
		EntityID:   customer.ID,
		Details:    details,
	})
	if err != nil {
		logger.Warn("Failed to record customer audit entry",
			zap.Error(err),
			zap.String("customerID", customer.ID))
	}
}
