package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. A rollback after commit is a no-op.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

const insertAuditQuery = `
	INSERT INTO audit_log (audit_id, action, entity_type, entity_id, user_id, timestamp, details, previous_state, new_state)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

// insertAuditEntryTx appends an audit log entry inside an existing database
// transaction so lifecycle writes and their audit trail commit together.
func insertAuditEntryTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLogEntry) error {
	_, err := tx.Exec(ctx, insertAuditQuery,
		entry.AuditID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.UserID,
		entry.Timestamp,
		entry.Details,
		entry.PreviousState,
		entry.NewState,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry "+entry.AuditID, err)
	}
	return nil
}
