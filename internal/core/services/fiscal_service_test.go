package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	"github.com/finacct/general_ledger_app/internal/dto"
)

func nextYearRequest() dto.CreateFiscalYearRequest {
	return dto.CreateFiscalYearRequest{
		Name:      "FY 2027",
		StartDate: time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateYearStartsPending(t *testing.T) {
	env := newTestEnv(t)

	year, err := env.services.Fiscal.CreateYear(env.ctx, nextYearRequest(), adminID)
	require.NoError(t, err)

	assert.Equal(t, domain.YearPending, year.Status)
	assert.False(t, year.IsCurrent)
	assert.Nil(t, year.ClosedAt)

	// The existing open year remains current.
	current, err := env.services.Fiscal.GetCurrentYear(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, env.year.FiscalYearID, current.FiscalYearID)
}

func TestCreateYearRejectsInvertedDates(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Fiscal.CreateYear(env.ctx, dto.CreateFiscalYearRequest{
		Name:      "FY backwards",
		StartDate: day(time.December, 31),
		EndDate:   day(time.January, 1),
	}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreatePeriodRangeValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name   string
		number int
		start  time.Time
		end    time.Time
	}{
		{"duplicate number", 2, day(time.April, 1), day(time.April, 30)},
		{"overlaps existing period", 4, day(time.March, 15), day(time.April, 30)},
		{"gap after previous period", 4, day(time.April, 2), day(time.April, 30)},
		{"end before start", 4, day(time.April, 30), day(time.April, 1)},
		{"outside year bounds", 4, day(time.April, 1), time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.services.Fiscal.CreatePeriod(env.ctx, dto.CreateFiscalPeriodRequest{
				FiscalYearID: env.year.FiscalYearID,
				PeriodNumber: tc.number,
				StartDate:    tc.start,
				EndDate:      tc.end,
			}, adminID)
			assert.ErrorIs(t, err, apperrors.ErrInvalidPeriodRange)
		})
	}

	// A contiguous April period is accepted.
	period, err := env.services.Fiscal.CreatePeriod(env.ctx, dto.CreateFiscalPeriodRequest{
		FiscalYearID: env.year.FiscalYearID,
		PeriodNumber: 4,
		StartDate:    day(time.April, 1),
		EndDate:      day(time.April, 30),
	}, adminID)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodOpen, period.Status)
}

func TestCreatePeriodRejectedForClosedYear(t *testing.T) {
	env := newTestEnv(t)
	for _, p := range env.periods {
		_, err := env.services.Fiscal.ClosePeriod(env.ctx, p.FiscalPeriodID, adminID)
		require.NoError(t, err)
	}
	_, err := env.services.Fiscal.CloseYear(env.ctx, env.year.FiscalYearID, adminID)
	require.NoError(t, err)

	_, err = env.services.Fiscal.CreatePeriod(env.ctx, dto.CreateFiscalPeriodRequest{
		FiscalYearID: env.year.FiscalYearID,
		PeriodNumber: 4,
		StartDate:    day(time.April, 1),
		EndDate:      day(time.April, 30),
	}, adminID)
	assert.ErrorIs(t, err, apperrors.ErrYearClosed)
}

func TestOpenYearConflicts(t *testing.T) {
	env := newTestEnv(t)

	// The fixture's year is already OPEN, not PENDING.
	_, err := env.services.Fiscal.OpenYear(env.ctx, env.year.FiscalYearID, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// A second year cannot open while another is open and current.
	next, err := env.services.Fiscal.CreateYear(env.ctx, nextYearRequest(), adminID)
	require.NoError(t, err)
	_, err = env.services.Fiscal.OpenYear(env.ctx, next.FiscalYearID, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestOpenYearRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	next, err := env.services.Fiscal.CreateYear(env.ctx, nextYearRequest(), adminID)
	require.NoError(t, err)

	for _, userID := range []string{clerkID, approverID, posterID} {
		_, err := env.services.Fiscal.OpenYear(env.ctx, next.FiscalYearID, userID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	}
}

func TestClosePeriodBlockedByOpenTransactions(t *testing.T) {
	env := newTestEnv(t)
	periodID := env.periods[0].FiscalPeriodID

	draft := env.createTransaction(t, false, 100)

	_, err := env.services.Fiscal.ClosePeriod(env.ctx, periodID, adminID)
	assert.ErrorIs(t, err, apperrors.ErrPeriodHasOpenTransactions)

	// Discarding the draft unblocks the close.
	_, err = env.services.Posting.VoidTransaction(env.ctx, draft.TransactionID, posterID, "discarding before close")
	require.NoError(t, err)

	closed, err := env.services.Fiscal.ClosePeriod(env.ctx, periodID, adminID)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodClosed, closed.Status)
}

func TestClosePeriodFreezesBalances(t *testing.T) {
	env := newTestEnv(t)
	periodID := env.periods[0].FiscalPeriodID

	env.postedTransaction(t, 100, day(time.January, 15))

	_, err := env.services.Fiscal.ClosePeriod(env.ctx, periodID, adminID)
	require.NoError(t, err)

	cash := env.balance(t, cashAccountID, periodID)
	assert.True(t, cash.Frozen)
	assert.True(t, cash.ClosingBalance.Equal(decimal.NewFromInt(100)), "closing balance is %s", cash.ClosingBalance)
	assert.True(t, cash.ClosingBalance.Equal(cash.CurrentBalance))
}

func TestClosePeriodAlreadyClosed(t *testing.T) {
	env := newTestEnv(t)
	periodID := env.periods[0].FiscalPeriodID

	_, err := env.services.Fiscal.ClosePeriod(env.ctx, periodID, adminID)
	require.NoError(t, err)

	_, err = env.services.Fiscal.ClosePeriod(env.ctx, periodID, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestClosePeriodRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Fiscal.ClosePeriod(env.ctx, env.periods[0].FiscalPeriodID, posterID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCloseYearBlockedByOpenPeriods(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Fiscal.CloseYear(env.ctx, env.year.FiscalYearID, adminID)
	assert.ErrorIs(t, err, apperrors.ErrYearHasOpenPeriods)
}

func TestCloseYearPromotesNextPendingYear(t *testing.T) {
	env := newTestEnv(t)

	next, err := env.services.Fiscal.CreateYear(env.ctx, nextYearRequest(), adminID)
	require.NoError(t, err)

	for _, p := range env.periods {
		_, err := env.services.Fiscal.ClosePeriod(env.ctx, p.FiscalPeriodID, adminID)
		require.NoError(t, err)
	}

	closed, err := env.services.Fiscal.CloseYear(env.ctx, env.year.FiscalYearID, adminID)
	require.NoError(t, err)

	assert.Equal(t, domain.YearClosed, closed.Status)
	assert.False(t, closed.IsCurrent)
	assert.NotNil(t, closed.ClosedAt)

	current, err := env.services.Fiscal.GetCurrentYear(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, next.FiscalYearID, current.FiscalYearID)
	assert.Equal(t, domain.YearOpen, current.Status)

	// Closing is irreversible.
	_, err = env.services.Fiscal.CloseYear(env.ctx, env.year.FiscalYearID, adminID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCloseYearWithoutSuccessorLeavesNoCurrent(t *testing.T) {
	env := newTestEnv(t)

	for _, p := range env.periods {
		_, err := env.services.Fiscal.ClosePeriod(env.ctx, p.FiscalPeriodID, adminID)
		require.NoError(t, err)
	}
	_, err := env.services.Fiscal.CloseYear(env.ctx, env.year.FiscalYearID, adminID)
	require.NoError(t, err)

	_, err = env.services.Fiscal.GetCurrentYear(env.ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetCurrentPeriod(t *testing.T) {
	env := newTestEnv(t)

	period, err := env.services.Fiscal.GetCurrentPeriod(env.ctx, day(time.February, 14))
	require.NoError(t, err)
	assert.Equal(t, 2, period.PeriodNumber)

	_, err = env.services.Fiscal.GetCurrentPeriod(env.ctx, day(time.August, 1))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListYearsAndPeriods(t *testing.T) {
	env := newTestEnv(t)

	years, err := env.services.Fiscal.ListYears(env.ctx)
	require.NoError(t, err)
	assert.Len(t, years, 1)

	periods, err := env.services.Fiscal.ListPeriods(env.ctx, env.year.FiscalYearID)
	require.NoError(t, err)
	require.Len(t, periods, 3)
	for i, p := range periods {
		assert.Equal(t, i+1, p.PeriodNumber)
	}
}
