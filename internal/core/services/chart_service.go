package services

import (
	"context"
	"fmt"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
)

// chartOfAccountsService adapts the read-only account repository to the
// collaborator interface the ledger core consumes.
type chartOfAccountsService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewChartOfAccountsService creates the chart-of-accounts collaborator.
func NewChartOfAccountsService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.ChartOfAccountsSvcFacade {
	return &chartOfAccountsService{accountRepo: accountRepo}
}

var _ portssvc.ChartOfAccountsSvcFacade = (*chartOfAccountsService)(nil)

// AccountExists reports whether the account is known and active.
func (s *chartOfAccountsService) AccountExists(ctx context.Context, accountID string) (bool, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return false, nil
	}
	return acc.IsActive, nil
}

// GetAccountType returns the fundamental accounting type of an account.
func (s *chartOfAccountsService) GetAccountType(ctx context.Context, accountID string) (domain.AccountType, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return "", fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return acc.AccountType, nil
}

// IsCashAccount reports whether the account is flagged for bank linkage.
func (s *chartOfAccountsService) IsCashAccount(ctx context.Context, accountID string) (bool, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return acc.IsCashAccount, nil
}

// GetAccounts returns accounts for the given IDs, keyed by ID.
func (s *chartOfAccountsService) GetAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts returns the full chart of accounts ordered by code.
func (s *chartOfAccountsService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}
