// api/service/services.go
package service

import (
	"database/sql"

	"github.com/medregistry/api/audit"
	"github.com/medregistry/api/cache"
	"github.com/medregistry/api/dao"
	"github.com/medregistry/api/util"
)

type Services struct {
	Customer     ICustomerService
	Document     IDocumentService
	Subscription ISubscriptionService
	Stats        IStatsService
}

func InitializeServices(
	sqlDB *sql.DB,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	store *cache.Store,
	invalidator *cache.Invalidator,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *Services {
	customerDAO := dao.NewCustomerDAO(sqlDB)
	documentDAO := dao.NewDocumentDAO(sqlDB)
	subscriptionDAO := dao.NewSubscriptionDAO(sqlDB)

	return &Services{
		Customer:     NewCustomerService(customerDAO, validationUtil, store, invalidator, auditService, notificationSvc, eventBus),
		Document:     NewDocumentService(documentDAO, validationUtil, store, invalidator, auditService, notificationSvc, eventBus),
		Subscription: NewSubscriptionService(subscriptionDAO, validationUtil, store, invalidator, auditService, notificationSvc, eventBus),
		Stats:        NewStatsService(customerDAO, documentDAO, subscriptionDAO, store),
	}
}
