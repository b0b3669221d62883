// api/controller/controllers.go
package controller

import (
	"github.com/medregistry/api/audit"
	"github.com/medregistry/api/cache"
	"github.com/medregistry/api/ratelimit"
	"github.com/medregistry/api/service"
)

type Controllers struct {
	Customer     *CustomerController
	Document     *DocumentController
	Subscription *SubscriptionController
	Admin        *AdminController
}

func InitializeControllers(
	services *service.Services,
	store *cache.Store,
	tracker *ratelimit.Tracker,
	auditService audit.Service,
) *Controllers {
	return &Controllers{
		Customer:     NewCustomerController(services.Customer),
		Document:     NewDocumentController(services.Document),
		Subscription: NewSubscriptionController(services.Subscription),
		Admin:        NewAdminController(store, tracker, services.Stats, auditService),
	}
}
