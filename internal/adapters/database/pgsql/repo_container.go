package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all PostgreSQL-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		FiscalRepo:      newPgxFiscalRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		BalanceRepo:     newPgxBalanceRepository(dbPool),
		AuditRepo:       newPgxAuditRepository(dbPool),
		AccountRepo:     newPgxAccountRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}
