package memory

import (
	"context"
	"sort"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
)

type transactionRepository struct {
	store *store
}

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

func (r *transactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	txn, ok := r.store.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := cloneTransaction(txn)
	return &out, nil
}

func (r *transactionRepository) list(match func(domain.Transaction) bool) []domain.Transaction {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var txns []domain.Transaction
	for _, txn := range r.store.transactions {
		if match(txn) {
			txns = append(txns, cloneTransaction(txn))
		}
	}
	sort.Slice(txns, func(i, j int) bool {
		if txns[i].TransactionDate.Equal(txns[j].TransactionDate) {
			return txns[i].TransactionID < txns[j].TransactionID
		}
		return txns[i].TransactionDate.Before(txns[j].TransactionDate)
	})
	return txns
}

func (r *transactionRepository) ListTransactionsByFiscalYear(ctx context.Context, fiscalYearID string) ([]domain.Transaction, error) {
	return r.list(func(t domain.Transaction) bool { return t.FiscalYearID == fiscalYearID }), nil
}

func (r *transactionRepository) ListTransactionsByFiscalPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.Transaction, error) {
	return r.list(func(t domain.Transaction) bool { return t.FiscalPeriodID == fiscalPeriodID }), nil
}

func (r *transactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return r.list(func(t domain.Transaction) bool {
		for _, e := range t.Entries {
			if e.AccountID == accountID {
				return true
			}
		}
		return false
	}), nil
}

func (r *transactionRepository) ListTransactionsByType(ctx context.Context, transactionType domain.TransactionType) ([]domain.Transaction, error) {
	return r.list(func(t domain.Transaction) bool { return t.TransactionType == transactionType }), nil
}

func (r *transactionRepository) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	return r.list(func(t domain.Transaction) bool { return t.Status == status }), nil
}

func (r *transactionRepository) CountTransactionsByPeriodAndStatuses(ctx context.Context, fiscalPeriodID string, statuses []domain.TransactionStatus) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	count := 0
	for _, txn := range r.store.transactions {
		if txn.FiscalPeriodID != fiscalPeriodID {
			continue
		}
		for _, s := range statuses {
			if txn.Status == s {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *transactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.transactions[txn.TransactionID]; exists {
		return apperrors.ErrDuplicate
	}
	r.store.transactions[txn.TransactionID] = cloneTransaction(txn)
	r.store.audit = append(r.store.audit, audit)
	return nil
}

func (r *transactionRepository) UpdateTransactionStatus(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.updateLifecycleLocked(txn, audit)
}

// updateLifecycleLocked overwrites lifecycle metadata while keeping the stored
// entry lines. Callers hold the store mutex.
func (r *transactionRepository) updateLifecycleLocked(txn domain.Transaction, audit domain.AuditLogEntry) error {
	stored, ok := r.store.transactions[txn.TransactionID]
	if !ok {
		return apperrors.ErrNotFound
	}

	stored.Status = txn.Status
	stored.ApprovedBy = txn.ApprovedBy
	stored.ApprovedAt = txn.ApprovedAt
	stored.PostedAt = txn.PostedAt
	stored.VoidedBy = txn.VoidedBy
	stored.VoidedAt = txn.VoidedAt
	stored.VoidReason = txn.VoidReason
	stored.RejectReason = txn.RejectReason
	stored.LastUpdatedAt = txn.LastUpdatedAt
	stored.LastUpdatedBy = txn.LastUpdatedBy
	r.store.transactions[txn.TransactionID] = stored
	r.store.audit = append(r.store.audit, audit)
	return nil
}

func (r *transactionRepository) MarkPosted(ctx context.Context, txn domain.Transaction, deltas []domain.BalanceDelta, audit domain.AuditLogEntry) error {
	return r.applyLifecycleWithDeltas(txn, deltas, audit)
}

func (r *transactionRepository) MarkVoided(ctx context.Context, txn domain.Transaction, deltas []domain.BalanceDelta, audit domain.AuditLogEntry) error {
	return r.applyLifecycleWithDeltas(txn, deltas, audit)
}

func (r *transactionRepository) applyLifecycleWithDeltas(txn domain.Transaction, deltas []domain.BalanceDelta, audit domain.AuditLogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.updateLifecycleLocked(txn, audit); err != nil {
		return err
	}
	for _, delta := range deltas {
		applyDeltaLocked(r.store, delta)
	}
	return nil
}
