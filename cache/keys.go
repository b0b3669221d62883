// api/cache/keys.go
package cache

import (
	"fmt"
	"time"
)

// TTLs per resource class. List and aggregate views change on every write to
// any member, so they decay faster than single-entity records. The policy
// lives here so call sites never pick their own numbers.
const (
	TTLCustomer     = 10 * time.Minute
	TTLCustomerList = 2 * time.Minute

	TTLDocument     = 10 * time.Minute
	TTLDocumentList = 2 * time.Minute

	TTLSubscription     = 10 * time.Minute
	TTLSubscriptionList = 2 * time.Minute

	TTLDashboardStats = 1 * time.Minute
	TTLAuditTrail     = 5 * time.Minute
)

// Key builders. Keys follow namespace:identifier[:qualifier]; every call
// site for the same logical resource must go through the same builder so
// hits stay consistent and namespace globs stay complete.

func CustomerKey(customerID string) string {
	return fmt.Sprintf("customer:%s", customerID)
}

func CustomerListKey(limit, offset int) string {
	return fmt.Sprintf("customers:list:%d:%d", limit, offset)
}

func DocumentKey(documentID string) string {
	return fmt.Sprintf("document:%s", documentID)
}

// CustomerDocumentsKey caches a customer's documents of one type. An empty
// docType means the unfiltered listing.
func CustomerDocumentsKey(customerID, docType string) string {
	if docType == "" {
		return fmt.Sprintf("documents:%s", customerID)
	}
	return fmt.Sprintf("documents:%s:%s", customerID, docType)
}

func SubscriptionKey(subscriptionID string) string {
	return fmt.Sprintf("subscription:%s", subscriptionID)
}

func CustomerSubscriptionsKey(customerID string) string {
	return fmt.Sprintf("subscriptions:%s", customerID)
}

func DashboardStatsKey() string {
	return "stats:dashboard"
}

func AuditTrailKey(entityID string) string {
	return fmt.Sprintf("audit:%s", entityID)
}
