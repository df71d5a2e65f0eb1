package services

import (
	"context"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// AuditSvcFacade exposes the append-only audit log. There is no update or
// delete operation by design.
type AuditSvcFacade interface {
	// Append records a state-changing operation and returns the immutable entry.
	Append(ctx context.Context, action domain.AuditAction, entityType domain.AuditEntityType, entityID, userID, details string, previousState, newState *string) (*domain.AuditLogEntry, error)

	// ListByEntity returns all entries for an entity in chronological order.
	ListByEntity(ctx context.Context, entityType domain.AuditEntityType, entityID string) ([]domain.AuditLogEntry, error)

	// ListRecent returns the most recent entries across all entities.
	ListRecent(ctx context.Context, limit int) ([]domain.AuditLogEntry, error)
}
