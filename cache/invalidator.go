// api/cache/invalidator.go
package cache

import (
	"go.uber.org/zap"

	logger "github.com/medregistry/api/logging"
)

// EntityKind names a mutable resource class tracked by the registry.
type EntityKind string

const (
	KindCustomer     EntityKind = "customer"
	KindDocument     EntityKind = "document"
	KindSubscription EntityKind = "subscription"
)

// Invalidator maps a committed domain mutation to the exact set of cache
// keys that are now stale: the entity's own key, the list views that embed
// it, and the dashboard aggregate that derives from every kind.
//
// Callers must invoke it synchronously, immediately after the underlying
// write commits. Invalidating before the commit opens a window where a stale
// read repopulates the cache with pre-write data.
type Invalidator struct {
	store *Store
}

func NewInvalidator(store *Store) *Invalidator {
	return &Invalidator{store: store}
}

// Invalidate drops every cached view affected by a mutation of the given
// entity. Deleting absent keys is a no-op, never an error.
func (i *Invalidator) Invalidate(kind EntityKind, id string) {
	switch kind {
	case KindCustomer:
		i.store.Delete(CustomerKey(id))
		i.store.DeletePattern("customers:list:*")
	case KindDocument:
		i.store.Delete(DocumentKey(id))
		// Without the owning customer in hand, all per-customer document
		// listings have to go. Services that know the owner should call
		// InvalidateCustomerDocuments instead.
		i.store.DeletePattern("documents:*")
	case KindSubscription:
		i.store.Delete(SubscriptionKey(id))
		i.store.DeletePattern("subscriptions:*")
	default:
		logger.Warn("Invalidation requested for unknown entity kind",
			zap.String("kind", string(kind)),
			zap.String("id", id))
		return
	}

	// Any write to any tracked kind stales the dashboard aggregate.
	i.store.Delete(DashboardStatsKey())

	logger.Debug("Cache invalidated",
		zap.String("kind", string(kind)),
		zap.String("id", id))
}

// InvalidateCustomerDocuments drops a single document plus the owning
// customer's document listings, leaving other customers' cached listings
// intact.
func (i *Invalidator) InvalidateCustomerDocuments(customerID, documentID string) {
	i.store.Delete(DocumentKey(documentID))
	i.store.Delete(CustomerDocumentsKey(customerID, ""))
	i.store.DeletePattern(CustomerDocumentsKey(customerID, "") + ":*")
	i.store.Delete(DashboardStatsKey())

	logger.Debug("Customer document cache invalidated",
		zap.String("customerID", customerID),
		zap.String("documentID", documentID))
}

// InvalidateCustomerSubscription drops a single subscription plus the owning
// customer's subscription listing.
func (i *Invalidator) InvalidateCustomerSubscription(customerID, subscriptionID string) {
	i.store.Delete(SubscriptionKey(subscriptionID))
	i.store.Delete(CustomerSubscriptionsKey(customerID))
	i.store.Delete(DashboardStatsKey())

	logger.Debug("Customer subscription cache invalidated",
		zap.String("customerID", customerID),
		zap.String("subscriptionID", subscriptionID))
}
