// Package memory provides an in-memory implementation of the repository
// ports. It backs service tests and local development without PostgreSQL.
package memory

import (
	"sync"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
)

type balanceKey struct {
	AccountID      string
	FiscalYearID   string
	FiscalPeriodID string
}

// store is the shared mutable state behind all in-memory repositories. A
// single mutex stands in for database transactions: composite operations take
// it once and mutate every table inside.
type store struct {
	mu sync.Mutex

	years        map[string]domain.FiscalYear
	periods      map[string]domain.FiscalPeriod
	transactions map[string]domain.Transaction
	balances     map[balanceKey]domain.AccountBalance
	audit        []domain.AuditLogEntry
	accounts     map[string]domain.Account
	users        map[string]domain.User
}

// NewRepositoryProvider wires all in-memory repositories over one shared store.
func NewRepositoryProvider() *portsrepo.RepositoryProvider {
	s := &store{
		years:        make(map[string]domain.FiscalYear),
		periods:      make(map[string]domain.FiscalPeriod),
		transactions: make(map[string]domain.Transaction),
		balances:     make(map[balanceKey]domain.AccountBalance),
		accounts:     make(map[string]domain.Account),
		users:        make(map[string]domain.User),
	}
	return &portsrepo.RepositoryProvider{
		FiscalRepo:      &fiscalRepository{store: s},
		TransactionRepo: &transactionRepository{store: s},
		BalanceRepo:     &balanceRepository{store: s},
		AuditRepo:       &auditRepository{store: s},
		AccountRepo:     &accountRepository{store: s},
		UserRepo:        &userRepository{store: s},
	}
}

// SeedAccount inserts an account directly, bypassing the read-only port. Test
// and dev-bootstrap helper.
func SeedAccount(provider *portsrepo.RepositoryProvider, account domain.Account) {
	repo := provider.AccountRepo.(*accountRepository)
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	repo.store.accounts[account.AccountID] = account
}

func cloneEntries(entries []domain.TransactionEntry) []domain.TransactionEntry {
	if entries == nil {
		return nil
	}
	out := make([]domain.TransactionEntry, len(entries))
	copy(out, entries)
	return out
}

func cloneTransaction(txn domain.Transaction) domain.Transaction {
	out := txn
	out.Entries = cloneEntries(txn.Entries)
	return out
}
