// api/util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/medregistry/api/logging"
	"github.com/medregistry/api/model"
)

type NotificationService struct {
	// A message-queue client would live here in a full deployment
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyCustomerChange(ctx context.Context, changeType string, customer model.Customer) error {
	switch changeType {
	case "created", "updated", "deleted":
		logger.Info("NOTIFICATION: Customer "+changeType,
			zap.String("customerID", customer.ID),
			zap.String("customerName", customer.Name))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

func (n *NotificationService) NotifyDocumentChange(ctx context.Context, changeType string, document model.Document) error {
	switch changeType {
	case "created", "updated", "deleted":
		logger.Info("NOTIFICATION: Document "+changeType,
			zap.String("documentID", document.ID),
			zap.String("customerID", document.CustomerID),
			zap.String("type", document.Type))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

func (n *NotificationService) NotifySubscriptionChange(ctx context.Context, changeType string, subscription model.Subscription) error {
	switch changeType {
	case "created", "updated", "cancelled":
		logger.Info("NOTIFICATION: Subscription "+changeType,
			zap.String("subscriptionID", subscription.ID),
			zap.String("customerID", subscription.CustomerID),
			zap.String("plan", subscription.Plan))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}
