// api/db/db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/medregistry/api/config"
	logger "github.com/medregistry/api/logging"
)

var Postgres *sql.DB

func InitPostgres() error {
	dsn := config.GetString("postgres.dsn")
	logger.Info("Connecting to Postgres")

	var err error
	Postgres, err = sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open Postgres connection: %w", err)
	}

	Postgres.SetMaxOpenConns(50)
	Postgres.SetConnMaxLifetime(30 * time.Minute)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Postgres.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	logger.Info("Successfully connected to Postgres")
	return nil
}

func ClosePostgres() {
	if Postgres != nil {
		if err := Postgres.Close(); err != nil {
			logger.Error("Error closing Postgres connection", zap.Error(err))
		} else {
			logger.Info("Postgres connection closed successfully")
		}
	}
}

// ExecTx runs work inside a transaction, committing on success and rolling
// back on error. Invalidation hooks belong after ExecTx returns nil, never
// inside work, so caches are only dropped once the write is durable.
func ExecTx(ctx context.Context, db *sql.DB, work func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := work(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Transaction rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
