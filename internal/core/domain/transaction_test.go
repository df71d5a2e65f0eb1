package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

func TestTransactionStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    domain.TransactionStatus
		to      domain.TransactionStatus
		allowed bool
	}{
		{domain.Draft, domain.Draft, false},
		{domain.Draft, domain.PendingApproval, true},
		{domain.Draft, domain.Approved, false},
		{domain.Draft, domain.Posted, false},
		{domain.Draft, domain.Voided, true},

		{domain.PendingApproval, domain.Draft, false},
		{domain.PendingApproval, domain.PendingApproval, false},
		{domain.PendingApproval, domain.Approved, true},
		{domain.PendingApproval, domain.Posted, false},
		{domain.PendingApproval, domain.Voided, false},

		{domain.Approved, domain.Draft, false},
		{domain.Approved, domain.PendingApproval, false},
		{domain.Approved, domain.Approved, false},
		{domain.Approved, domain.Posted, true},
		{domain.Approved, domain.Voided, false},

		{domain.Posted, domain.Draft, false},
		{domain.Posted, domain.PendingApproval, false},
		{domain.Posted, domain.Approved, false},
		{domain.Posted, domain.Posted, false},
		{domain.Posted, domain.Voided, true},

		{domain.Voided, domain.Draft, false},
		{domain.Voided, domain.PendingApproval, false},
		{domain.Voided, domain.Approved, false},
		{domain.Voided, domain.Posted, false},
		{domain.Voided, domain.Voided, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equalf(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestTransactionStatusSideExits(t *testing.T) {
	assert.True(t, domain.PendingApproval.CanTransitionTo(domain.Rejected))
	assert.False(t, domain.Draft.CanTransitionTo(domain.Rejected))
	assert.False(t, domain.Approved.CanTransitionTo(domain.Rejected))

	// REJECTED is terminal
	for _, to := range []domain.TransactionStatus{
		domain.Draft, domain.PendingApproval, domain.Approved, domain.Posted, domain.Voided,
	} {
		assert.Falsef(t, domain.Rejected.CanTransitionTo(to), "REJECTED -> %s", to)
	}
}

func TestTransactionEntrySignedAmount(t *testing.T) {
	debit := domain.TransactionEntry{DebitAmount: decimal.NewFromInt(150), CreditAmount: decimal.Zero}
	credit := domain.TransactionEntry{DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(150)}

	assert.True(t, debit.SignedAmount().Equal(decimal.NewFromInt(150)))
	assert.True(t, credit.SignedAmount().Equal(decimal.NewFromInt(-150)))
}
