package repositories

import (
	"context"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// TransactionReader defines read operations for ledger transaction data.
// All reads return transactions with their entry lines populated.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByFiscalYear retrieves all transactions scoped to a fiscal year.
	ListTransactionsByFiscalYear(ctx context.Context, fiscalYearID string) ([]domain.Transaction, error)

	// ListTransactionsByFiscalPeriod retrieves all transactions scoped to a fiscal period.
	ListTransactionsByFiscalPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.Transaction, error)

	// ListTransactionsByAccount retrieves all transactions with at least one entry
	// touching the account.
	ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// ListTransactionsByType retrieves all transactions of the given type.
	ListTransactionsByType(ctx context.Context, transactionType domain.TransactionType) ([]domain.Transaction, error)

	// ListTransactionsByStatus retrieves all transactions in the given status.
	ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error)

	// CountTransactionsByPeriodAndStatuses counts transactions referencing the
	// period whose status is one of the given statuses. Used as the period-close gate.
	CountTransactionsByPeriodAndStatuses(ctx context.Context, fiscalPeriodID string, statuses []domain.TransactionStatus) (int, error)
}

// TransactionWriter defines write operations for ledger transaction data.
// Every write persists the supplied audit entry in the same atomic unit.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction header with its entry lines.
	SaveTransaction(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEntry) error

	// UpdateTransactionStatus persists a lifecycle metadata update (submit,
	// approve, reject) that carries no balance impact.
	UpdateTransactionStatus(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEntry) error

	// MarkPosted persists the POSTED status, applies every balance delta and
	// appends the audit entry as one atomic unit. On any failure the transaction
	// status and all balances remain unchanged.
	MarkPosted(ctx context.Context, txn domain.Transaction, deltas []domain.BalanceDelta, audit domain.AuditLogEntry) error

	// MarkVoided mirrors MarkPosted for the VOIDED transition with negated deltas.
	// Deltas may be empty when voiding a draft.
	MarkVoided(ctx context.Context, txn domain.Transaction, deltas []domain.BalanceDelta, audit domain.AuditLogEntry) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
