package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// BalanceSide identifies which side of the ledger an account normally
// carries its balance on.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// NormalBalanceSide returns the side an account of the given type normally
// carries its balance on. ASSET and EXPENSE accounts are debit-normal,
// LIABILITY, EQUITY and REVENUE accounts are credit-normal.
func NormalBalanceSide(accountType domain.AccountType) (BalanceSide, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return DebitSide, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return CreditSide, nil
	default:
		return "", fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// NormalizedBalance converts a raw debit-minus-credit balance into the
// conventional presentation for the account type: credit-normal accounts are
// shown with the sign flipped so a healthy liability reads positive.
func NormalizedBalance(raw decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	side, err := NormalBalanceSide(accountType)
	if err != nil {
		return decimal.Zero, err
	}
	if side == CreditSide {
		return raw.Neg(), nil
	}
	return raw, nil
}

// EntriesBalance sums the signed amounts of the given entry lines. A balanced
// set of lines sums to exactly zero.
func EntriesBalance(entries []domain.TransactionEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.SignedAmount())
	}
	return sum
}
