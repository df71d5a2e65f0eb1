package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
	"github.com/finacct/general_ledger_app/internal/middleware"
)

// auditService exposes the append-only audit log. The core lifecycle flows
// write their audit entries atomically through the repositories; this service
// exists for reads and for external modules that need to record their own
// state changes.
type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates the audit log service.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Append records a state-changing operation and returns the immutable entry.
func (s *auditService) Append(ctx context.Context, action domain.AuditAction, entityType domain.AuditEntityType, entityID, userID, details string, previousState, newState *string) (*domain.AuditLogEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry := newAuditEntry(action, entityType, entityID, userID, details, previousState, newState)
	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		logger.Error("Failed to append audit entry", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}
	return &entry, nil
}

// ListByEntity returns all entries for an entity in chronological order.
func (s *auditService) ListByEntity(ctx context.Context, entityType domain.AuditEntityType, entityID string) ([]domain.AuditLogEntry, error) {
	return s.auditRepo.ListAuditByEntity(ctx, entityType, entityID)
}

// ListRecent returns the most recent entries across all entities.
func (s *auditService) ListRecent(ctx context.Context, limit int) ([]domain.AuditLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.auditRepo.ListRecentAudit(ctx, limit)
}
