// api/controller/document_controller.go
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

type DocumentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) *DocumentController {
	return &DocumentController{
		documentService: documentService,
	}
}

// RegisterRoutes registers the API routes
func (dc *DocumentController) RegisterRoutes(r *gin.RouterGroup) {
	documents := r.Group("/documents")
	{
		documents.POST("", dc.CreateDocument)
		documents.PUT("/:id", dc.UpdateDocument)
		documents.DELETE("/:id", dc.DeleteDocument)
		documents.GET("/:id", dc.GetDocument)
	}
	r.GET("/customers/:id/documents", dc.ListCustomerDocuments)
}

// CreateDocument endpoint
func (dc *DocumentController) CreateDocument(c *gin.Context) {
	var document model.Document
	if err := c.ShouldBindJSON(&document); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid document data", registry_errors.ErrInvalidDocumentData)
		return
	}
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", registry_errors.ErrUnauthorized)
		return
	}

	createdDocument, err := dc.documentService.CreateDocument(c, document, actorID)
	if err != nil {
		if errors.Is(err, registry_errors.ErrDatabaseOperation) {
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		} else {
			util.RespondWithError(c, http.StatusBadRequest, "Failed to create document", err)
		}
		return
	}

	c.JSON(http.StatusCreated, createdDocument)
}

// UpdateDocument endpoint
func (dc *DocumentController) UpdateDocument(c *gin.Context) {
	documentID := c.Param("id")
	var document model.Document
	if err := c.ShouldBindJSON(&document); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid document data", err)
		return
	}
	document.ID = documentID
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedDocument, err := dc.documentService.UpdateDocument(c, document, actorID)
	if err != nil {
		if errors.Is(err, registry_errors.ErrDocumentNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Document not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update document", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedDocument)
}

// DeleteDocument endpoint
func (dc *DocumentController) DeleteDocument(c *gin.Context) {
	documentID := c.Param("id")
	actorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := dc.documentService.DeleteDocument(c, documentID, actorID); err != nil {
		if errors.Is(err, registry_errors.ErrDocumentNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Document not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete document", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetDocument endpoint
func (dc *DocumentController) GetDocument(c *gin.Context) {
	documentID := c.Param("id")

	document, err := dc.documentService.GetDocument(c, documentID)
	if err != nil {
		if errors.Is(err, registry_errors.ErrDocumentNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Document not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get document", err)
		}
		return
	}

	c.JSON(http.StatusOK, document)
}

// ListCustomerDocuments endpoint
func (dc *DocumentController) ListCustomerDocuments(c *gin.Context) {
	customerID := c.Param("id")
	docType := c.Query("type")

	documents, err := dc.documentService.ListCustomerDocuments(c, customerID, docType)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list documents", err)
		return
	}

	c.JSON(http.StatusOK, documents)
}
