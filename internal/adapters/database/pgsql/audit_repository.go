package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
)

// PgxAuditRepository persists the append-only audit log. There is no update
// or delete statement in this file on purpose.
type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const auditColumns = `
	audit_id, action, entity_type, entity_id, user_id, timestamp, details, previous_state, new_state
`

func (r *PgxAuditRepository) listAudit(ctx context.Context, query string, args ...any) ([]domain.AuditLogEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list audit entries", err)
	}
	defer rows.Close()

	var entries []domain.AuditLogEntry
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func scanAuditEntry(row pgx.Row) (*domain.AuditLogEntry, error) {
	var entry domain.AuditLogEntry
	err := row.Scan(
		&entry.AuditID,
		&entry.Action,
		&entry.EntityType,
		&entry.EntityID,
		&entry.UserID,
		&entry.Timestamp,
		&entry.Details,
		&entry.PreviousState,
		&entry.NewState,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan audit entry", err)
	}
	return &entry, nil
}

// ListAuditByEntity retrieves all entries for an entity in chronological order.
func (r *PgxAuditRepository) ListAuditByEntity(ctx context.Context, entityType domain.AuditEntityType, entityID string) ([]domain.AuditLogEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log WHERE entity_type = $1 AND entity_id = $2 ORDER BY timestamp, audit_id;`
	return r.listAudit(ctx, query, entityType, entityID)
}

// ListRecentAudit retrieves the most recent entries, newest first.
func (r *PgxAuditRepository) ListRecentAudit(ctx context.Context, limit int) ([]domain.AuditLogEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log ORDER BY timestamp DESC, audit_id DESC LIMIT $1;`
	return r.listAudit(ctx, query, limit)
}

// SaveAuditEntry appends an entry to the log.
func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	_, err := r.Pool.Exec(ctx, insertAuditQuery,
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
