package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
)

// PgxBalanceRepository persists per-period account balance rows.
type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

const balanceColumns = `
	account_id, fiscal_year_id, fiscal_period_id, opening_balance, current_balance,
	closing_balance, frozen, last_updated
`

func scanBalance(row pgx.Row) (*domain.AccountBalance, error) {
	var balance domain.AccountBalance
	err := row.Scan(
		&balance.AccountID,
		&balance.FiscalYearID,
		&balance.FiscalPeriodID,
		&balance.OpeningBalance,
		&balance.CurrentBalance,
		&balance.ClosingBalance,
		&balance.Frozen,
		&balance.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan account balance", err)
	}
	return &balance, nil
}

// FindBalance retrieves the balance row for the composite key.
func (r *PgxBalanceRepository) FindBalance(ctx context.Context, accountID, fiscalYearID, fiscalPeriodID string) (*domain.AccountBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM account_balances
		WHERE account_id = $1 AND fiscal_year_id = $2 AND fiscal_period_id = $3;`
	return scanBalance(r.Pool.QueryRow(ctx, query, accountID, fiscalYearID, fiscalPeriodID))
}

func (r *PgxBalanceRepository) listBalances(ctx context.Context, query string, args ...any) ([]domain.AccountBalance, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list account balances", err)
	}
	defer rows.Close()

	var balances []domain.AccountBalance
	for rows.Next() {
		balance, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, *balance)
	}
	return balances, rows.Err()
}

// ListBalancesByPeriod retrieves all balance rows scoped to a fiscal period.
func (r *PgxBalanceRepository) ListBalancesByPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.AccountBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM account_balances WHERE fiscal_period_id = $1 ORDER BY account_id;`
	return r.listBalances(ctx, query, fiscalPeriodID)
}

// ListBalancesByAccount retrieves all balance rows for an account across periods.
func (r *PgxBalanceRepository) ListBalancesByAccount(ctx context.Context, accountID string) ([]domain.AccountBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM account_balances WHERE account_id = $1 ORDER BY fiscal_year_id, fiscal_period_id;`
	return r.listBalances(ctx, query, accountID)
}

// applyDeltaTx upserts one balance delta inside an existing database
// transaction. A missing row is created with the delta's opening seed; an
// existing row gets its current balance incremented in place.
func applyDeltaTx(ctx context.Context, tx pgx.Tx, delta domain.BalanceDelta) error {
	query := `
		INSERT INTO account_balances (account_id, fiscal_year_id, fiscal_period_id, opening_balance, current_balance, closing_balance, frozen, last_updated)
		VALUES ($1, $2, $3, $4, $4 + $5, 0, FALSE, $6)
		ON CONFLICT (account_id, fiscal_year_id, fiscal_period_id)
		DO UPDATE SET current_balance = account_balances.current_balance + $5, last_updated = $6;
	`
	_, err := tx.Exec(ctx, query,
		delta.AccountID,
		delta.FiscalYearID,
		delta.FiscalPeriodID,
		delta.OpeningSeed,
		delta.Amount,
		time.Now().UTC(),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply balance delta for account "+delta.AccountID, err)
	}
	return nil
}

// ApplyDelta applies a single delta in its own database transaction. The
// posting path uses the composite operations on the transaction repository
// instead; this exists for corrections and tooling.
func (r *PgxBalanceRepository) ApplyDelta(ctx context.Context, delta domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyDeltaTx(ctx, tx, delta); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
