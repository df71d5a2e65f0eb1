package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBalanceReturnsZeroRowWhenAbsent(t *testing.T) {
	env := newTestEnv(t)

	bal := env.balance(t, cashAccountID, env.periods[0].FiscalPeriodID)

	assert.Equal(t, cashAccountID, bal.AccountID)
	assert.Equal(t, env.year.FiscalYearID, bal.FiscalYearID)
	assert.Equal(t, env.periods[0].FiscalPeriodID, bal.FiscalPeriodID)
	assert.True(t, bal.OpeningBalance.IsZero())
	assert.True(t, bal.CurrentBalance.IsZero())
	assert.True(t, bal.ClosingBalance.IsZero())
	assert.False(t, bal.Frozen)
}

func TestListBalancesByPeriod(t *testing.T) {
	env := newTestEnv(t)
	periodID := env.periods[0].FiscalPeriodID

	env.postedTransaction(t, 100, day(time.January, 15))

	balances, err := env.services.Balance.ListBalancesByPeriod(env.ctx, periodID)
	require.NoError(t, err)
	assert.Len(t, balances, 2)
}

func TestTrialBalance(t *testing.T) {
	env := newTestEnv(t)
	periodID := env.periods[0].FiscalPeriodID

	env.postedTransaction(t, 100, day(time.January, 10))
	env.postedTransaction(t, 40, day(time.January, 20))

	tb, err := env.services.Balance.TrialBalance(env.ctx, periodID)
	require.NoError(t, err)

	assert.Equal(t, periodID, tb.FiscalPeriodID)
	require.Len(t, tb.Rows, 2)

	// Rows are ordered by account code: cash (1010) before revenue (4000).
	cash := tb.Rows[0]
	revenue := tb.Rows[1]
	assert.Equal(t, "1010", cash.AccountCode)
	assert.Equal(t, "Operating Cash", cash.AccountName)
	assert.True(t, cash.Debit.Equal(decimal.NewFromInt(140)), "cash debit is %s", cash.Debit)
	assert.True(t, cash.Credit.IsZero())

	assert.Equal(t, "4000", revenue.AccountCode)
	assert.True(t, revenue.Credit.Equal(decimal.NewFromInt(140)), "revenue credit is %s", revenue.Credit)
	assert.True(t, revenue.Debit.IsZero())

	assert.True(t, tb.TotalDebits.Equal(tb.TotalCredits))
	assert.True(t, tb.TotalDebits.Equal(decimal.NewFromInt(140)))
}

func TestTrialBalanceEmptyPeriod(t *testing.T) {
	env := newTestEnv(t)

	tb, err := env.services.Balance.TrialBalance(env.ctx, env.periods[2].FiscalPeriodID)
	require.NoError(t, err)

	assert.Empty(t, tb.Rows)
	assert.True(t, tb.TotalDebits.IsZero())
	assert.True(t, tb.TotalCredits.IsZero())
}
