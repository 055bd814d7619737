package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/betting-league/repositories"
)

// runInTx executes fn inside a database transaction. A nil db (as used by
// unit tests with in-memory repositories) runs fn without one; the fakes
// ignore the executor argument.
func runInTx(ctx context.Context, db *sql.DB, fn func(exec repositories.SQLExecutor) error) error {
	if db == nil {
		return fn(nil)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
