package memory

import (
	"context"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
)

type auditRepository struct {
	store *store
}

var _ portsrepo.AuditRepositoryFacade = (*auditRepository)(nil)

func (r *auditRepository) ListAuditByEntity(ctx context.Context, entityType domain.AuditEntityType, entityID string) ([]domain.AuditLogEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var entries []domain.AuditLogEntry
	for _, entry := range r.store.audit {
		if entry.EntityType == entityType && entry.EntityID == entityID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (r *auditRepository) ListRecentAudit(ctx context.Context, limit int) ([]domain.AuditLogEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n := len(r.store.audit)
	if limit > n {
		limit = n
	}
	entries := make([]domain.AuditLogEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		entries = append(entries, r.store.audit[i])
	}
	return entries, nil
}

func (r *auditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.audit = append(r.store.audit, entry)
	return nil
}
