package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/shredderfleet/fleetcommand/internal/database"
	"github.com/shredderfleet/fleetcommand/internal/errors"
)

// PostgresBaseRepo carries the connection shared by the SQL repositories.
// Queries are written with ? placeholders and rebound for the driver, so the
// same statements run on PostgreSQL and SQLite.
type PostgresBaseRepo struct {
	db database.DB
}

func (r *PostgresBaseRepo) rebind(query string) string {
	return r.db.GetDB().Rebind(query)
}

func (r *PostgresBaseRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to begin transaction", err)
	}
	return tx, nil
}

func (r *PostgresBaseRepo) Commit(tx database.Transaction) error {
	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseError("failed to commit transaction", err)
	}
	return nil
}

// Rollback is safe to defer after Commit.
func (r *PostgresBaseRepo) Rollback(tx database.Transaction) error {
	if err := tx.Rollback(); err != nil && !stderrors.Is(err, sql.ErrTxDone) {
		return errors.NewDatabaseError("failed to rollback transaction", err)
	}
	return nil
}

func (r *PostgresBaseRepo) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	result, err := r.db.GetDB().ExecContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to execute query", err)
	}
	return result, nil
}

// getContext scans one row into dest. sql.ErrNoRows is returned unwrapped.
func (r *PostgresBaseRepo) getContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return r.db.GetDB().GetContext(ctx, dest, r.rebind(query), args...)
}

func (r *PostgresBaseRepo) selectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return r.db.GetDB().SelectContext(ctx, dest, r.rebind(query), args...)
}
