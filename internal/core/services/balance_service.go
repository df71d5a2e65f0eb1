package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
	"github.com/finacct/general_ledger_app/internal/dto"
)

// balanceService exposes the read side of the account balance ledger. All
// writes flow through the posting coordinator and period close.
type balanceService struct {
	balanceRepo portsrepo.BalanceReader
	chartSvc    portssvc.ChartOfAccountsSvcFacade
}

// NewBalanceService creates the balance read service.
func NewBalanceService(balanceRepo portsrepo.BalanceReader, chartSvc portssvc.ChartOfAccountsSvcFacade) portssvc.BalanceSvcFacade {
	return &balanceService{
		balanceRepo: balanceRepo,
		chartSvc:    chartSvc,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetBalance returns the balance row, or a zero-valued row when nothing has
// posted against the combination yet. Absence is valid domain state here, not
// a failure.
func (s *balanceService) GetBalance(ctx context.Context, accountID, fiscalYearID, fiscalPeriodID string) (*domain.AccountBalance, error) {
	balance, err := s.balanceRepo.FindBalance(ctx, accountID, fiscalYearID, fiscalPeriodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.AccountBalance{
				AccountID:      accountID,
				FiscalYearID:   fiscalYearID,
				FiscalPeriodID: fiscalPeriodID,
				OpeningBalance: decimal.Zero,
				CurrentBalance: decimal.Zero,
				ClosingBalance: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("failed to find balance: %w", err)
	}
	return balance, nil
}

// ListBalancesByPeriod returns all balance rows of a fiscal period.
func (s *balanceService) ListBalancesByPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.AccountBalance, error) {
	return s.balanceRepo.ListBalancesByPeriod(ctx, fiscalPeriodID)
}

// TrialBalance builds per-account debit/credit totals for a period from the
// raw balance rows: a positive debit-minus-credit balance lands in the debit
// column, a negative one in the credit column.
func (s *balanceService) TrialBalance(ctx context.Context, fiscalPeriodID string) (*dto.TrialBalanceResponse, error) {
	balances, err := s.balanceRepo.ListBalancesByPeriod(ctx, fiscalPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances for period %s: %w", fiscalPeriodID, err)
	}

	accountIDs := make([]string, 0, len(balances))
	for _, b := range balances {
		accountIDs = append(accountIDs, b.AccountID)
	}
	accounts, err := s.chartSvc.GetAccounts(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for trial balance: %w", err)
	}

	resp := &dto.TrialBalanceResponse{
		FiscalPeriodID: fiscalPeriodID,
		Rows:           make([]dto.TrialBalanceRow, 0, len(balances)),
		TotalDebits:    decimal.Zero,
		TotalCredits:   decimal.Zero,
	}

	for _, b := range balances {
		row := dto.TrialBalanceRow{
			AccountID: b.AccountID,
			Debit:     decimal.Zero,
			Credit:    decimal.Zero,
		}
		if acc, ok := accounts[b.AccountID]; ok {
			row.AccountCode = acc.Code
			row.AccountName = acc.Name
			row.AccountType = string(acc.AccountType)
		}
		if b.CurrentBalance.IsNegative() {
			row.Credit = b.CurrentBalance.Neg()
		} else {
			row.Debit = b.CurrentBalance
		}
		resp.TotalDebits = resp.TotalDebits.Add(row.Debit)
		resp.TotalCredits = resp.TotalCredits.Add(row.Credit)
		resp.Rows = append(resp.Rows, row)
	}

	sort.Slice(resp.Rows, func(i, j int) bool {
		return resp.Rows[i].AccountCode < resp.Rows[j].AccountCode
	})

	return resp, nil
}
