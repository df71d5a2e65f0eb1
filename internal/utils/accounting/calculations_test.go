package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	"github.com/finacct/general_ledger_app/internal/utils/accounting"
)

func TestNormalBalanceSide(t *testing.T) {
	cases := []struct {
		accountType domain.AccountType
		want        accounting.BalanceSide
	}{
		{domain.Asset, accounting.DebitSide},
		{domain.Expense, accounting.DebitSide},
		{domain.Liability, accounting.CreditSide},
		{domain.Equity, accounting.CreditSide},
		{domain.Revenue, accounting.CreditSide},
	}
	for _, tc := range cases {
		side, err := accounting.NormalBalanceSide(tc.accountType)
		require.NoError(t, err)
		assert.Equal(t, tc.want, side, string(tc.accountType))
	}

	_, err := accounting.NormalBalanceSide(domain.AccountType("SURPLUS"))
	assert.Error(t, err)
}

func TestNormalizedBalance(t *testing.T) {
	raw := decimal.NewFromInt(-500)

	asset, err := accounting.NormalizedBalance(raw, domain.Asset)
	require.NoError(t, err)
	assert.True(t, asset.Equal(decimal.NewFromInt(-500)))

	liability, err := accounting.NormalizedBalance(raw, domain.Liability)
	require.NoError(t, err)
	assert.True(t, liability.Equal(decimal.NewFromInt(500)))
}

func TestEntriesBalance(t *testing.T) {
	balanced := []domain.TransactionEntry{
		{DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.NewFromInt(50), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(150)},
	}
	assert.True(t, accounting.EntriesBalance(balanced).IsZero())

	unbalanced := append(balanced, domain.TransactionEntry{
		DebitAmount: decimal.NewFromInt(25), CreditAmount: decimal.Zero,
	})
	assert.True(t, accounting.EntriesBalance(unbalanced).Equal(decimal.NewFromInt(25)))
}
