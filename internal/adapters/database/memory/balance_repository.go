package memory

import (
	"context"
	"sort"
	"time"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
)

type balanceRepository struct {
	store *store
}

var _ portsrepo.BalanceRepositoryFacade = (*balanceRepository)(nil)

func (r *balanceRepository) FindBalance(ctx context.Context, accountID, fiscalYearID, fiscalPeriodID string) (*domain.AccountBalance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := balanceKey{AccountID: accountID, FiscalYearID: fiscalYearID, FiscalPeriodID: fiscalPeriodID}
	balance, ok := r.store.balances[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &balance, nil
}

func (r *balanceRepository) ListBalancesByPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.AccountBalance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var balances []domain.AccountBalance
	for key, balance := range r.store.balances {
		if key.FiscalPeriodID == fiscalPeriodID {
			balances = append(balances, balance)
		}
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].AccountID < balances[j].AccountID })
	return balances, nil
}

func (r *balanceRepository) ListBalancesByAccount(ctx context.Context, accountID string) ([]domain.AccountBalance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var balances []domain.AccountBalance
	for key, balance := range r.store.balances {
		if key.AccountID == accountID {
			balances = append(balances, balance)
		}
	}
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].FiscalYearID != balances[j].FiscalYearID {
			return balances[i].FiscalYearID < balances[j].FiscalYearID
		}
		return balances[i].FiscalPeriodID < balances[j].FiscalPeriodID
	})
	return balances, nil
}

// applyDeltaLocked upserts a delta into the balance table. Callers hold the
// store mutex.
func applyDeltaLocked(s *store, delta domain.BalanceDelta) {
	key := balanceKey{AccountID: delta.AccountID, FiscalYearID: delta.FiscalYearID, FiscalPeriodID: delta.FiscalPeriodID}
	now := time.Now().UTC()

	balance, ok := s.balances[key]
	if !ok {
		balance = domain.AccountBalance{
			AccountID:      delta.AccountID,
			FiscalYearID:   delta.FiscalYearID,
			FiscalPeriodID: delta.FiscalPeriodID,
			OpeningBalance: delta.OpeningSeed,
			CurrentBalance: delta.OpeningSeed,
		}
	}
	balance.CurrentBalance = balance.CurrentBalance.Add(delta.Amount)
	balance.LastUpdated = now
	s.balances[key] = balance
}

func (r *balanceRepository) ApplyDelta(ctx context.Context, delta domain.BalanceDelta) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	applyDeltaLocked(r.store, delta)
	return nil
}
