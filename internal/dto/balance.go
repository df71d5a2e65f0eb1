package dto

import (
	"time"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse is the API representation of an account balance row.
// Balances are in the raw debit-minus-credit convention.
type BalanceResponse struct {
	AccountID      string          `json:"accountID"`
	FiscalYearID   string          `json:"fiscalYearID"`
	FiscalPeriodID string          `json:"fiscalPeriodID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Frozen         bool            `json:"frozen"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// ToBalanceResponse converts a domain balance row to its API representation.
func ToBalanceResponse(b *domain.AccountBalance) BalanceResponse {
	return BalanceResponse{
		AccountID:      b.AccountID,
		FiscalYearID:   b.FiscalYearID,
		FiscalPeriodID: b.FiscalPeriodID,
		OpeningBalance: b.OpeningBalance,
		CurrentBalance: b.CurrentBalance,
		ClosingBalance: b.ClosingBalance,
		Frozen:         b.Frozen,
		LastUpdated:    b.LastUpdated,
	}
}

// TrialBalanceRow is one account line of a trial balance report. The raw
// period balance is presented on the debit or credit column per its sign.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse is the trial balance for one fiscal period. For a
// consistent ledger TotalDebits always equals TotalCredits.
type TrialBalanceResponse struct {
	FiscalPeriodID string            `json:"fiscalPeriodID"`
	Rows           []TrialBalanceRow `json:"rows"`
	TotalDebits    decimal.Decimal   `json:"totalDebits"`
	TotalCredits   decimal.Decimal   `json:"totalCredits"`
}
