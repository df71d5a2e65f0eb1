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

func TestCreateTransactionDraft(t *testing.T) {
	env := newTestEnv(t)

	txn := env.createTransaction(t, false, 250)

	assert.Equal(t, domain.Draft, txn.Status)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, env.year.FiscalYearID, txn.FiscalYearID)
	assert.Equal(t, env.periods[0].FiscalPeriodID, txn.FiscalPeriodID)
	assert.Equal(t, clerkID, txn.CreatedBy)
	require.Len(t, txn.Entries, 2)
	for _, e := range txn.Entries {
		assert.NotEmpty(t, e.EntryID)
		assert.Equal(t, txn.TransactionID, e.TransactionID)
	}

	stored, err := env.services.Ledger.GetTransactionByID(env.ctx, txn.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, domain.Draft, stored.Status)
	require.Len(t, stored.Entries, 2)
}

func TestCreateTransactionSubmitForApproval(t *testing.T) {
	env := newTestEnv(t)

	txn := env.createTransaction(t, true, 100)

	assert.Equal(t, domain.PendingApproval, txn.Status)
}

func TestCreateTransactionExplicitScope(t *testing.T) {
	env := newTestEnv(t)

	txn, err := env.services.Ledger.CreateTransaction(env.ctx, dto.CreateTransactionRequest{
		TransactionType: domain.JournalEntry,
		TransactionDate: day(time.February, 10),
		Description:     "february supplies",
		FiscalYearID:    env.year.FiscalYearID,
		FiscalPeriodID:  env.periods[1].FiscalPeriodID,
		Entries:         balancedEntries(75),
	}, clerkID)
	require.NoError(t, err)

	assert.Equal(t, env.periods[1].FiscalPeriodID, txn.FiscalPeriodID)
}

func TestCreateTransactionEntryValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name    string
		entries []dto.CreateTransactionEntryRequest
		wantErr error
	}{
		{
			name: "single entry",
			entries: []dto.CreateTransactionEntryRequest{
				{AccountID: cashAccountID, DebitAmount: decimal.NewFromInt(50)},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "unbalanced",
			entries: []dto.CreateTransactionEntryRequest{
				{AccountID: cashAccountID, DebitAmount: decimal.NewFromInt(100)},
				{AccountID: revenueAccountID, CreditAmount: decimal.NewFromInt(90)},
			},
			wantErr: apperrors.ErrUnbalancedEntry,
		},
		{
			name: "line with neither side",
			entries: []dto.CreateTransactionEntryRequest{
				{AccountID: cashAccountID, DebitAmount: decimal.NewFromInt(100)},
				{AccountID: revenueAccountID},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "line with both sides",
			entries: []dto.CreateTransactionEntryRequest{
				{AccountID: cashAccountID, DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.NewFromInt(100)},
				{AccountID: revenueAccountID, CreditAmount: decimal.NewFromInt(100)},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "negative amount",
			entries: []dto.CreateTransactionEntryRequest{
				{AccountID: cashAccountID, DebitAmount: decimal.NewFromInt(-100)},
				{AccountID: revenueAccountID, CreditAmount: decimal.NewFromInt(-100)},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "unknown account",
			entries: []dto.CreateTransactionEntryRequest{
				{AccountID: "acc-missing", DebitAmount: decimal.NewFromInt(100)},
				{AccountID: revenueAccountID, CreditAmount: decimal.NewFromInt(100)},
			},
			wantErr: apperrors.ErrAccountNotFound,
		},
		{
			name: "inactive account",
			entries: []dto.CreateTransactionEntryRequest{
				{AccountID: inactiveAccountID, DebitAmount: decimal.NewFromInt(100)},
				{AccountID: revenueAccountID, CreditAmount: decimal.NewFromInt(100)},
			},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.services.Ledger.CreateTransaction(env.ctx, dto.CreateTransactionRequest{
				TransactionType: domain.JournalEntry,
				TransactionDate: day(time.January, 15),
				Description:     "invalid attempt",
				Entries:         tc.entries,
			}, clerkID)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateTransactionRejectedWhenPeriodClosed(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Fiscal.ClosePeriod(env.ctx, env.periods[2].FiscalPeriodID, adminID)
	require.NoError(t, err)

	_, err = env.services.Ledger.CreateTransaction(env.ctx, dto.CreateTransactionRequest{
		TransactionType: domain.JournalEntry,
		TransactionDate: day(time.March, 10),
		Description:     "late entry",
		Entries:         balancedEntries(10),
	}, clerkID)
	assert.ErrorIs(t, err, apperrors.ErrPeriodClosed)
}

func TestCreateTransactionNoPeriodForDate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Ledger.CreateTransaction(env.ctx, dto.CreateTransactionRequest{
		TransactionType: domain.JournalEntry,
		TransactionDate: day(time.July, 4),
		Description:     "no calendar coverage",
		Entries:         balancedEntries(10),
	}, clerkID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubmitTransaction(t *testing.T) {
	env := newTestEnv(t)
	txn := env.createTransaction(t, false, 100)

	submitted, err := env.services.Ledger.SubmitTransaction(env.ctx, txn.TransactionID, clerkID)
	require.NoError(t, err)
	assert.Equal(t, domain.PendingApproval, submitted.Status)

	// Resubmitting is not a legal transition.
	_, err = env.services.Ledger.SubmitTransaction(env.ctx, txn.TransactionID, clerkID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}

func TestApproveTransaction(t *testing.T) {
	env := newTestEnv(t)
	txn := env.createTransaction(t, true, 100)

	approved, err := env.services.Ledger.ApproveTransaction(env.ctx, txn.TransactionID, approverID)
	require.NoError(t, err)

	assert.Equal(t, domain.Approved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, approverID, *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)
}

func TestApproveTransactionRequiresApproverRole(t *testing.T) {
	env := newTestEnv(t)
	txn := env.createTransaction(t, true, 100)

	_, err := env.services.Ledger.ApproveTransaction(env.ctx, txn.TransactionID, clerkID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.services.Ledger.ApproveTransaction(env.ctx, txn.TransactionID, posterID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestApproveTransactionCreatorMayNotApprove(t *testing.T) {
	env := newTestEnv(t)

	// The approver creates and submits their own transaction.
	txn, err := env.services.Ledger.CreateTransaction(env.ctx, dto.CreateTransactionRequest{
		TransactionType:   domain.JournalEntry,
		TransactionDate:   day(time.January, 15),
		Description:       "self-dealing attempt",
		SubmitForApproval: true,
		Entries:           balancedEntries(100),
	}, approverID)
	require.NoError(t, err)

	_, err = env.services.Ledger.ApproveTransaction(env.ctx, txn.TransactionID, approverID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// A different approver may.
	_, err = env.services.Ledger.ApproveTransaction(env.ctx, txn.TransactionID, adminID)
	assert.NoError(t, err)
}

func TestApproveTransactionFromDraft(t *testing.T) {
	env := newTestEnv(t)
	txn := env.createTransaction(t, false, 100)

	_, err := env.services.Ledger.ApproveTransaction(env.ctx, txn.TransactionID, approverID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}

func TestRejectTransaction(t *testing.T) {
	env := newTestEnv(t)
	txn := env.createTransaction(t, true, 100)

	rejected, err := env.services.Ledger.RejectTransaction(env.ctx, txn.TransactionID, approverID, "missing documentation")
	require.NoError(t, err)

	assert.Equal(t, domain.Rejected, rejected.Status)
	assert.Equal(t, "missing documentation", rejected.RejectReason)

	// REJECTED is terminal.
	_, err = env.services.Ledger.ApproveTransaction(env.ctx, txn.TransactionID, approverID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
	_, err = env.services.Ledger.SubmitTransaction(env.ctx, txn.TransactionID, clerkID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)
}

func TestListTransactions(t *testing.T) {
	env := newTestEnv(t)
	env.createTransaction(t, false, 100)
	env.createTransaction(t, true, 200)
	env.createTransactionOn(t, false, 50, day(time.February, 5))

	byYear, err := env.services.Ledger.ListByFiscalYear(env.ctx, env.year.FiscalYearID)
	require.NoError(t, err)
	assert.Len(t, byYear, 3)

	byPeriod, err := env.services.Ledger.ListByFiscalPeriod(env.ctx, env.periods[0].FiscalPeriodID)
	require.NoError(t, err)
	assert.Len(t, byPeriod, 2)

	byStatus, err := env.services.Ledger.ListByStatus(env.ctx, domain.PendingApproval)
	require.NoError(t, err)
	assert.Len(t, byStatus, 1)

	byAccount, err := env.services.Ledger.ListByAccount(env.ctx, cashAccountID)
	require.NoError(t, err)
	assert.Len(t, byAccount, 3)

	byType, err := env.services.Ledger.ListByType(env.ctx, domain.JournalEntry)
	require.NoError(t, err)
	assert.Len(t, byType, 3)
}
