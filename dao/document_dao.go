// api/dao/document_dao.go
package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/medregistry/api/db"
	registry_errors "github.com/medregistry/api/errors"
	logger "github.com/medregistry/api/logging"
	"github.com/medregistry/api/model"
)

// IDocumentDAO is the persistence boundary for registry documents.
type IDocumentDAO interface {
	CreateDocument(ctx context.Context, document model.Document) error
	UpdateDocument(ctx context.Context, document model.Document) error
	DeleteDocument(ctx context.Context, documentID string) error
	GetDocument(ctx context.Context, documentID string) (*model.Document, error)
	ListCustomerDocuments(ctx context.Context, customerID, docType string) ([]model.Document, error)
	CountDocuments(ctx context.Context) (int, error)
}

type DocumentDAO struct {
	db *sql.DB
}

func NewDocumentDAO(sqlDB *sql.DB) *DocumentDAO {
	return &DocumentDAO{db: sqlDB}
}

func (d *DocumentDAO) CreateDocument(ctx context.Context, document model.Document) error {
	const query = `INSERT INTO documents (id, customer_id, type, title, status, file_name, file_size, created_by, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	err := db.ExecTx(ctx, d.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			document.ID, document.CustomerID, document.Type, document.Title, document.Status,
			document.FileName, document.FileSize, document.CreatedBy, document.CreatedAt, document.UpdatedAt)
		return err
	})
	if err != nil {
		logger.Error("Failed to create document", zap.Error(err), zap.String("documentID", document.ID))
		return fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	return nil
}

func (d *DocumentDAO) UpdateDocument(ctx context.Context, document model.Document) error {
	const query = `UPDATE documents SET type = $2, title = $3, status = $4, file_name = $5, file_size = $6, updated_at = $7
                   WHERE id = $1`
	res, err := d.db.ExecContext(ctx, query,
		document.ID, document.Type, document.Title, document.Status,
		document.FileName, document.FileSize, document.UpdatedAt)
	if err != nil {
		logger.Error("Failed to update document", zap.Error(err), zap.String("documentID", document.ID))
		return fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return registry_errors.ErrDocumentNotFound
	}
	return nil
}

func (d *DocumentDAO) DeleteDocument(ctx context.Context, documentID string) error {
	const query = `DELETE FROM documents WHERE id = $1`
	res, err := d.db.ExecContext(ctx, query, documentID)
	if err != nil {
		logger.Error("Failed to delete document", zap.Error(err), zap.String("documentID", documentID))
		return fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return registry_errors.ErrDocumentNotFound
	}
	return nil
}

func (d *DocumentDAO) GetDocument(ctx context.Context, documentID string) (*model.Document, error) {
	const query = `SELECT id, customer_id, type, title, status, file_name, file_size, created_by, created_at, updated_at
                   FROM documents WHERE id = $1`
	var document model.Document
	err := d.db.QueryRowContext(ctx, query, documentID).Scan(
		&document.ID, &document.CustomerID, &document.Type, &document.Title, &document.Status,
		&document.FileName, &document.FileSize, &document.CreatedBy, &document.CreatedAt, &document.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, registry_errors.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	return &document, nil
}

// ListCustomerDocuments returns a customer's documents, optionally filtered
// by type.
func (d *DocumentDAO) ListCustomerDocuments(ctx context.Context, customerID, docType string) ([]model.Document, error) {
	query := `SELECT id, customer_id, type, title, status, file_name, file_size, created_by, created_at, updated_at
              FROM documents WHERE customer_id = $1`
	args := []any{customerID}
	if docType != "" {
		query += ` AND type = $2`
		args = append(args, docType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	defer rows.Close()

	documents := []model.Document{}
	for rows.Next() {
		var document model.Document
		if err := rows.Scan(
			&document.ID, &document.CustomerID, &document.Type, &document.Title, &document.Status,
			&document.FileName, &document.FileSize, &document.CreatedBy, &document.CreatedAt, &document.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
		}
		documents = append(documents, document)
	}
	return documents, rows.Err()
}

func (d *DocumentDAO) CountDocuments(ctx context.Context) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	return count, nil
}
