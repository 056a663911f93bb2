// Package db holds small database/sql helpers shared by the stores.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// WithTx runs fn in a transaction. It rolls back when fn fails and
// commits otherwise.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// UnixMilli converts a nullable millisecond timestamp column. NULL
// yields the zero time.
func UnixMilli(n sql.NullInt64) time.Time {
	if !n.Valid {
		return time.Time{}
	}
	return time.UnixMilli(n.Int64)
}
