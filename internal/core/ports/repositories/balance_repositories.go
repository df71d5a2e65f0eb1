package repositories

import (
	"context"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// BalanceReader defines read operations for account balance data.
type BalanceReader interface {
	// FindBalance retrieves the balance row for the composite key, or
	// ErrNotFound if no transaction has posted against it yet. Absence is valid
	// domain state; callers treat it as a zero balance.
	FindBalance(ctx context.Context, accountID, fiscalYearID, fiscalPeriodID string) (*domain.AccountBalance, error)

	// ListBalancesByPeriod retrieves all balance rows scoped to a fiscal period.
	ListBalancesByPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.AccountBalance, error)

	// ListBalancesByAccount retrieves all balance rows for an account across periods.
	ListBalancesByAccount(ctx context.Context, accountID string) ([]domain.AccountBalance, error)
}

// BalanceWriter defines write operations for account balance data. These are
// invoked only by the posting coordinator's atomic operations, never by
// callers directly.
type BalanceWriter interface {
	// ApplyDelta adds the signed amount to the row's current balance, creating
	// the row lazily if absent with delta.OpeningSeed as its opening balance
	// (the prior period's closing balance, or zero). Idempotency is the
	// caller's responsibility.
	ApplyDelta(ctx context.Context, delta domain.BalanceDelta) error
}

// BalanceRepositoryFacade combines all balance repository interfaces.
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceWriter
}
