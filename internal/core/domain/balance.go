package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the running balance of one account within one fiscal
// period. Rows are created lazily on the first posting against the
// (account, year, period) combination and are derived state: only the posting
// coordinator writes them.
//
// Balances are stored in the raw debit-minus-credit convention; translating to
// the account type's normal-balance presentation is a reporting concern.
type AccountBalance struct {
	AccountID      string          `json:"accountID"`      // Composite key part
	FiscalYearID   string          `json:"fiscalYearID"`   // Composite key part
	FiscalPeriodID string          `json:"fiscalPeriodID"` // Composite key part
	OpeningBalance decimal.Decimal `json:"openingBalance"` // Carried from prior period's close, else 0
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"` // Meaningful only once Frozen
	Frozen         bool            `json:"frozen"`         // Set when the owning period closes
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// BalanceDelta is one signed adjustment to an account balance row, produced by
// the posting coordinator from a transaction entry.
type BalanceDelta struct {
	AccountID      string
	FiscalYearID   string
	FiscalPeriodID string
	Amount         decimal.Decimal // Raw debit - credit; negated for voids
	OpeningSeed    decimal.Decimal // Opening balance used if the row must be created
}
