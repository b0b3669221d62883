// api/util/validation_util.go

package util

import (
	"fmt"

	"github.com/medregistry/api/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateCustomer(customer model.Customer) error {
	if customer.Name == "" {
		return fmt.Errorf("customer name cannot be empty")
	}
	if customer.Email == "" {
		return fmt.Errorf("customer email cannot be empty")
	}
	switch customer.Status {
	case "", "active", "suspended", "archived":
	default:
		return fmt.Errorf("unknown customer status: %s", customer.Status)
	}
	return nil
}

func (v *ValidationUtil) ValidateDocument(document model.Document) error {
	if document.CustomerID == "" {
		return fmt.Errorf("document customer ID cannot be empty")
	}
	if document.Type == "" {
		return fmt.Errorf("document type cannot be empty")
	}
	if document.Title == "" {
		return fmt.Errorf("document title cannot be empty")
	}
	if document.FileSize < 0 {
		return fmt.Errorf("document file size cannot be negative")
	}
	return nil
}

func (v *ValidationUtil) ValidateSubscription(subscription model.Subscription) error {
	if subscription.CustomerID == "" {
		return fmt.Errorf("subscription customer ID cannot be empty")
	}
	if subscription.Plan == "" {
		return fmt.Errorf("subscription plan cannot be empty")
	}
	if subscription.ExpiresAt != nil && subscription.ExpiresAt.Before(subscription.StartsAt) {
		return fmt.Errorf("subscription cannot expire before it starts")
	}
	return nil
}
