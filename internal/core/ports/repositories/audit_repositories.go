package repositories

import (
	"context"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// AuditReader defines read operations for the audit log.
type AuditReader interface {
	// ListAuditByEntity retrieves all entries for an entity in insertion order,
	// which is chronological order by design.
	ListAuditByEntity(ctx context.Context, entityType domain.AuditEntityType, entityID string) ([]domain.AuditLogEntry, error)

	// ListRecentAudit retrieves the most recent entries across all entities,
	// newest first, capped at limit.
	ListRecentAudit(ctx context.Context, limit int) ([]domain.AuditLogEntry, error)
}

// AuditWriter defines the single write operation for the audit log. There is
// deliberately no update or delete: the log is append-only.
type AuditWriter interface {
	// SaveAuditEntry appends an entry to the log.
	SaveAuditEntry(ctx context.Context, entry domain.AuditLogEntry) error
}

// AuditRepositoryFacade combines the audit log repository interfaces.
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
