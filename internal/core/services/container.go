package services

import (
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
)

// NewContainer creates the service container with properly initialized
// dependencies. All mutating services share one LedgerLock so that posting,
// voiding, transaction creation and period/year closing serialize against
// each other.
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	lock := NewLedgerLock()

	authz := NewAuthorizationService(repos.UserRepo)
	chart := NewChartOfAccountsService(repos.AccountRepo)
	fiscal := NewFiscalService(lock, repos.FiscalRepo, repos.TransactionRepo, authz)

	return &portssvc.ServiceContainer{
		Fiscal:        fiscal,
		Ledger:        NewLedgerService(lock, repos.TransactionRepo, fiscal, chart, authz),
		Posting:       NewPostingService(lock, repos.TransactionRepo, repos.BalanceRepo, repos.FiscalRepo, authz),
		Balance:       NewBalanceService(repos.BalanceRepo, chart),
		Audit:         NewAuditService(repos.AuditRepo),
		Chart:         chart,
		Authorization: authz,
		User:          NewUserService(repos.UserRepo),
	}
}
