package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

func TestAuditAppendAndListByEntity(t *testing.T) {
	env := newTestEnv(t)

	prev := "DRAFT"
	next := "PENDING_APPROVAL"
	entry, err := env.services.Audit.Append(env.ctx, domain.ActionUpdate, domain.EntityTransaction,
		"txn-external", clerkID, "external module update", &prev, &next)
	require.NoError(t, err)

	assert.NotEmpty(t, entry.AuditID)
	assert.False(t, entry.Timestamp.IsZero())

	trail, err := env.services.Audit.ListByEntity(env.ctx, domain.EntityTransaction, "txn-external")
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, domain.ActionUpdate, trail[0].Action)
	require.NotNil(t, trail[0].PreviousState)
	assert.Equal(t, "DRAFT", *trail[0].PreviousState)
	require.NotNil(t, trail[0].NewState)
	assert.Equal(t, "PENDING_APPROVAL", *trail[0].NewState)
}

func TestAuditFiscalCalendarTrail(t *testing.T) {
	env := newTestEnv(t)

	// The fixture creates and opens the year.
	trail, err := env.services.Audit.ListByEntity(env.ctx, domain.EntityFiscalYear, env.year.FiscalYearID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, domain.ActionCreate, trail[0].Action)
	assert.Equal(t, domain.ActionOpen, trail[1].Action)

	_, err = env.services.Fiscal.ClosePeriod(env.ctx, env.periods[0].FiscalPeriodID, adminID)
	require.NoError(t, err)

	periodTrail, err := env.services.Audit.ListByEntity(env.ctx, domain.EntityFiscalPeriod, env.periods[0].FiscalPeriodID)
	require.NoError(t, err)
	require.Len(t, periodTrail, 2)
	assert.Equal(t, domain.ActionCreate, periodTrail[0].Action)
	assert.Equal(t, domain.ActionClose, periodTrail[1].Action)
	assert.Equal(t, adminID, periodTrail[1].UserID)
}

func TestAuditListRecent(t *testing.T) {
	env := newTestEnv(t)

	txn := env.createTransaction(t, false, 100)

	recent, err := env.services.Audit.ListRecent(env.ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, domain.ActionCreate, recent[0].Action)
	assert.Equal(t, txn.TransactionID, recent[0].EntityID)

	// A non-positive limit falls back to the default and returns everything
	// the fixture produced (4 year/period creates, 1 open, 1 txn create).
	all, err := env.services.Audit.ListRecent(env.ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}
