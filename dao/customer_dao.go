// api/dao/customer_dao.go
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

// ICustomerDAO is the persistence boundary for customers.
type ICustomerDAO interface {
	CreateCustomer(ctx context.Context, customer model.Customer) error
	UpdateCustomer(ctx context.Context, customer model.Customer) error
	DeleteCustomer(ctx context.Context, customerID string) error
	GetCustomer(ctx context.Context, customerID string) (*model.Customer, error)
	ListCustomers(ctx context.Context, limit, offset int) ([]model.Customer, error)
	CountCustomers(ctx context.Context) (int, error)
}

type CustomerDAO struct {
	db *sql.DB
}

func NewCustomerDAO(sqlDB *sql.DB) *CustomerDAO {
	return &CustomerDAO{db: sqlDB}
}

func (d *CustomerDAO) CreateCustomer(ctx context.Context, customer model.Customer) error {
	const query = `INSERT INTO customers (id, name, email, phone, organization, status, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	err := db.ExecTx(ctx, d.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			customer.ID, customer.Name, customer.Email, customer.Phone,
			customer.Organization, customer.Status, customer.CreatedAt, customer.UpdatedAt)
		return err
	})
	if err != nil {
		logger.Error("Failed to create customer", zap.Error(err), zap.String("customerID", customer.ID))
		return fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	return nil
}

func (d *CustomerDAO) UpdateCustomer(ctx context.Context, customer model.Customer) error {
	const query = `UPDATE customers SET name = $2, email = $3, phone = $4, organization = $5, status = $6, updated_at = $7
                   WHERE id = $1`
	res, err := d.db.ExecContext(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Phone,
		customer.Organization, customer.Status, customer.UpdatedAt)
	if err != nil {
		logger.Error("Failed to update customer", zap.Error(err), zap.String("customerID", customer.ID))
		return fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return registry_errors.ErrCustomerNotFound
	}
	return nil
}

func (d *CustomerDAO) DeleteCustomer(ctx context.Context, customerID string) error {
	const query = `DELETE FROM customers WHERE id = $1`
	res, err := d.db.ExecContext(ctx, query, customerID)
	if err != nil {
		logger.Error("Failed to delete customer", zap.Error(err), zap.String("customerID", customerID))
		return fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return registry_errors.ErrCustomerNotFound
	}
	return nil
}

func (d *CustomerDAO) GetCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	const query = `SELECT id, name, email, phone, organization, status, created_at, updated_at
                   FROM customers WHERE id = $1`
	var customer model.Customer
	err := d.db.QueryRowContext(ctx, query, customerID).Scan(
		&customer.ID, &customer.Name, &customer.Email, &customer.Phone,
		&customer.Organization, &customer.Status, &customer.CreatedAt, &customer.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, registry_errors.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	return &customer, nil
}

func (d *CustomerDAO) ListCustomers(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	const query = `SELECT id, name, email, phone, organization, status, created_at, updated_at
                   FROM customers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := d.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var customer model.Customer
		if err := rows.Scan(
			&customer.ID, &customer.Name, &customer.Email, &customer.Phone,
			&customer.Organization, &customer.Status, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (d *CustomerDAO) CountCustomers(ctx context.Context) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	return count, nil
}
