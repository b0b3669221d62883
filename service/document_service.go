// api/service/document_service.go
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

type IDocumentService interface {
	CreateDocument(ctx context.Context, document model.Document, actorID string) (*model.Document, error)
	UpdateDocument(ctx context.Context, document model.Document, actorID string) (*model.Document, error)
	DeleteDocument(ctx context.Context, documentID, actorID string) error
	GetDocument(ctx context.Context, documentID string) (*model.Document, error)
	ListCustomerDocuments(ctx context.Context, customerID, docType string) ([]model.Document, error)
}

// DocumentService handles business logic for registry document operations
type DocumentService struct {
	documentDAO     dao.IDocumentDAO
	validationUtil  *util.ValidationUtil
	store           *cache.Store
	invalidator     *cache.Invalidator
	auditService    audit.Service
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

func NewDocumentService(
	documentDAO dao.IDocumentDAO,
	validationUtil *util.ValidationUtil,
	store *cache.Store,
	invalidator *cache.Invalidator,
	auditService audit.Service,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *DocumentService {
	service := &DocumentService{
		documentDAO:     documentDAO,
		validationUtil:  validationUtil,
		store:           store,
		invalidator:     invalidator,
		auditService:    auditService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	eventBus.Subscribe("document.created", service.handleDocumentEvent("created"))
	eventBus.Subscribe("document.updated", service.handleDocumentEvent("updated"))
	eventBus.Subscribe("document.deleted", service.handleDocumentEvent("deleted"))

	return service
}

func (s *DocumentService) handleDocumentEvent(changeType string) util.EventHandler {
	return func(ctx context.Context, event util.Event) error {
		document, ok := event.Payload.(model.Document)
		if !ok {
			logger.Error("Invalid document event payload", zap.Any("payload", event.Payload))
			return nil
		}
		return s.notificationSvc.NotifyDocumentChange(ctx, changeType, document)
	}
}

func (s *DocumentService) CreateDocument(ctx context.Context, document model.Document, actorID string) (*model.Document, error) {
	if err := s.validationUtil.ValidateDocument(document); err != nil {
		return nil, err
	}

	if document.ID == "" {
		document.ID = uuid.NewString()
	}
	if document.Status == "" {
		document.Status = "draft"
	}
	document.CreatedBy = actorID
	document.CreatedAt = time.Now()
	document.UpdatedAt = document.CreatedAt

	if err := s.documentDAO.CreateDocument(ctx, document); err != nil {
		logger.Error("Error creating document", zap.Error(err), zap.String("actorID", actorID))
		return nil, err
	}

	s.invalidator.InvalidateCustomerDocuments(document.CustomerID, document.ID)
	cache.SetAs(s.store, cache.DocumentKey(document.ID), document, cache.TTLDocument)

	s.recordAudit(ctx, actorID, "created", document)
	s.eventBus.Publish(ctx, "document.created", document)

	logger.Info("Document created successfully",
		zap.String("documentID", document.ID),
		zap.String("customerID", document.CustomerID),
		zap.String("actorID", actorID))
	return &document, nil
}

func (s *DocumentService) UpdateDocument(ctx context.Context, document model.Document, actorID string) (*model.Document, error) {
	if err := s.validationUtil.ValidateDocument(document); err != nil {
		return nil, err
	}

	document.UpdatedAt = time.Now()

	if err := s.documentDAO.UpdateDocument(ctx, document); err != nil {
		logger.Error("Error updating document", zap.Error(err), zap.String("documentID", document.ID))
		return nil, err
	}

	s.invalidator.InvalidateCustomerDocuments(document.CustomerID, document.ID)
	cache.SetAs(s.store, cache.DocumentKey(document.ID), document, cache.TTLDocument)

	s.recordAudit(ctx, actorID, "updated", document)
	s.eventBus.Publish(ctx, "document.updated", document)

	logger.Info("Document updated successfully",
		zap.String("documentID", document.ID),
		zap.String("actorID", actorID))
	return &document, nil
}

func (s *DocumentService) DeleteDocument(ctx context.Context, documentID, actorID string) error {
	// The owning customer is needed for targeted invalidation; read the
	// record before removing it.
	document, err := s.documentDAO.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.documentDAO.DeleteDocument(ctx, documentID); err != nil {
		logger.Error("Error deleting document", zap.Error(err), zap.String("documentID", documentID))
		return err
	}

	s.invalidator.InvalidateCustomerDocuments(document.CustomerID, documentID)

	s.recordAudit(ctx, actorID, "deleted", *document)
	s.eventBus.Publish(ctx, "document.deleted", *document)

	logger.Info("Document deleted successfully",
		zap.String("documentID", documentID),
		zap.String("actorID", actorID))
	return nil
}

func (s *DocumentService) GetDocument(ctx context.Context, documentID string) (*model.Document, error) {
	if cached, ok := cache.GetAs[model.Document](s.store, cache.DocumentKey(documentID)); ok {
		return &cached, nil
	}

	document, err := s.documentDAO.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	cache.SetAs(s.store, cache.DocumentKey(documentID), *document, cache.TTLDocument)
	return document, nil
}

func (s *DocumentService) ListCustomerDocuments(ctx context.Context, customerID, docType string) ([]model.Document, error) {
	key := cache.CustomerDocumentsKey(customerID, docType)
	if cached, ok := cache.GetAs[[]model.Document](s.store, key); ok {
		return cached, nil
	}

	documents, err := s.documentDAO.ListCustomerDocuments(ctx, customerID, docType)
	if err != nil {
		return nil, err
	}

	cache.SetAs(s.store, key, documents, cache.TTLDocumentList)
	return documents, nil
}

func (s *DocumentService) recordAudit(ctx context.Context, actorID, action string, document model.Document) {
	details, _ := json.Marshal(document)
	err := s.auditService.Record(ctx, audit.Entry{
		Timestamp:  time.Now(),
		ActorID:    actorID,
		Action:     action,
		EntityKind: string(cache.KindDocument),
		EntityID:   document.ID,
		Details:    details,
	})
	if err != nil {
		logger.Warn("Failed to record document audit entry",
			zap.Error(err),
			zap.String("documentID", document.ID))
	}
}
