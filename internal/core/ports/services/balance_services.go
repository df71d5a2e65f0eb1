package services

import (
	"context"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	"github.com/finacct/general_ledger_app/internal/dto"
)

// BalanceSvcFacade exposes the read side of the account balance ledger.
// Writes happen only through the posting coordinator and period close.
type BalanceSvcFacade interface {
	// GetBalance returns the balance row for the composite key. Absence is not
	// an error: a zero-valued row is returned for combinations nothing has
	// posted against.
	GetBalance(ctx context.Context, accountID, fiscalYearID, fiscalPeriodID string) (*domain.AccountBalance, error)

	// ListBalancesByPeriod returns all balance rows of a fiscal period.
	ListBalancesByPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.AccountBalance, error)

	// TrialBalance builds the per-account debit/credit totals for a period.
	TrialBalance(ctx context.Context, fiscalPeriodID string) (*dto.TrialBalanceResponse, error)
}
