package services

import (
	"context"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// ChartOfAccountsSvcFacade is the read-only collaborator supplying account
// identity and type. The registry itself is owned outside the ledger core.
type ChartOfAccountsSvcFacade interface {
	// AccountExists reports whether the account is known and active.
	AccountExists(ctx context.Context, accountID string) (bool, error)

	// GetAccountType returns the fundamental accounting type of an account.
	GetAccountType(ctx context.Context, accountID string) (domain.AccountType, error)

	// IsCashAccount reports whether the account is flagged for bank linkage.
	IsCashAccount(ctx context.Context, accountID string) (bool, error)

	// GetAccounts returns accounts for the given IDs, keyed by ID.
	GetAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns the full chart of accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
