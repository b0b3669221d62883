// api/dao/subscription_dao.go
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

// ISubscriptionDAO is the persistence boundary for subscriptions.
type ISubscriptionDAO interface {
	CreateSubscription(ctx context.Context, subscription model.Subscription) error
	UpdateSubscription(ctx context.Context, subscription model.Subscription) error
	GetSubscription(ctx context.Context, subscriptionID string) (*model.Subscription, error)
	ListCustomerSubscriptions(ctx context.Context, customerID string) ([]model.Subscription, error)
	CountActiveSubscriptions(ctx context.Context) (int, error)
}

type SubscriptionDAO struct {
	db *sql.DB
}

func NewSubscriptionDAO(sqlDB *sql.DB) *SubscriptionDAO {
	return &SubscriptionDAO{db: sqlDB}
}

func (d *SubscriptionDAO) CreateSubscription(ctx context.Context, subscription model.Subscription) error {
	const query = `INSERT INTO subscriptions (id, customer_id, plan, status, starts_at, expires_at, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	err := db.ExecTx(ctx, d.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			subscription.ID, subscription.CustomerID, subscription.Plan, subscription.Status,
			subscription.StartsAt, subscription.ExpiresAt, subscription.CreatedAt, subscription.UpdatedAt)
		return err
	})
	if err != nil {
		logger.Error("Failed to create subscription", zap.Error(err), zap.String("subscriptionID", subscription.ID))
		return fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	return nil
}

func (d *SubscriptionDAO) UpdateSubscription(ctx context.Context, subscription model.Subscription) error {
	const query = `UPDATE subscriptions SET plan = $2, status = $3, starts_at = $4, expires_at = $5, updated_at = $6
                   WHERE id = $1`
	res, err := d.db.ExecContext(ctx, query,
		subscription.ID, subscription.Plan, subscription.Status,
		subscription.StartsAt, subscription.ExpiresAt, subscription.UpdatedAt)
	if err != nil {
		logger.Error("Failed to update subscription", zap.Error(err), zap.String("subscriptionID", subscription.ID))
		return fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return registry_errors.ErrSubscriptionNotFound
	}
	return nil
}

func (d *SubscriptionDAO) GetSubscription(ctx context.Context, subscriptionID string) (*model.Subscription, error) {
	const query = `SELECT id, customer_id, plan, status, starts_at, expires_at, created_at, updated_at
                   FROM subscriptions WHERE id = $1`
	var subscription model.Subscription
	err := d.db.QueryRowContext(ctx, query, subscriptionID).Scan(
		&subscription.ID, &subscription.CustomerID, &subscription.Plan, &subscription.Status,
		&subscription.StartsAt, &subscription.ExpiresAt, &subscription.CreatedAt, &subscription.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, registry_errors.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	return &subscription, nil
}

func (d *SubscriptionDAO) ListCustomerSubscriptions(ctx context.Context, customerID string) ([]model.Subscription, error) {
	const query = `SELECT id, customer_id, plan, status, starts_at, expires_at, created_at, updated_at
                   FROM subscriptions WHERE customer_id = $1 ORDER BY created_at DESC`
	rows, err := d.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	defer rows.Close()

	subscriptions := []model.Subscription{}
	for rows.Next() {
		var subscription model.Subscription
		if err := rows.Scan(
			&subscription.ID, &subscription.CustomerID, &subscription.Plan, &subscription.Status,
			&subscription.StartsAt, &subscription.ExpiresAt, &subscription.CreatedAt, &subscription.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
		}
		subscriptions = append(subscriptions, subscription)
	}
	return subscriptions, rows.Err()
}

func (d *SubscriptionDAO) CountActiveSubscriptions(ctx context.Context) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscriptions WHERE status = 'active'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", registry_errors.ErrDatabaseOperation, err)
	}
	return count, nil
}
