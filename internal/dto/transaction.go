package dto

import (
	"time"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionEntryRequest is one debit or credit line of a new transaction.
// Exactly one of debitAmount/creditAmount must be nonzero; both must be >= 0.
type CreateTransactionEntryRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// CreateTransactionRequest defines the payload for creating a ledger transaction.
// When fiscalYearID/fiscalPeriodID are omitted the current year/period are used;
// having no current period is a hard stop.
type CreateTransactionRequest struct {
	TransactionType   domain.TransactionType          `json:"transactionType" binding:"required,oneof=JOURNAL_ENTRY ACCOUNTS_PAYABLE ACCOUNTS_RECEIVABLE TUITION_CREDIT DEPRECIATION BANK_ADJUSTMENT"`
	TransactionDate   time.Time                       `json:"transactionDate" binding:"required"`
	Description       string                          `json:"description" binding:"required"`
	Reference         string                          `json:"reference"`
	FiscalYearID      string                          `json:"fiscalYearID"`
	FiscalPeriodID    string                          `json:"fiscalPeriodID"`
	SubmitForApproval bool                            `json:"submitForApproval"`
	Entries           []CreateTransactionEntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// VoidTransactionRequest defines the payload for voiding a transaction.
type VoidTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectTransactionRequest defines the payload for rejecting a submitted transaction.
type RejectTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TransactionEntryResponse is the API representation of an entry line.
type TransactionEntryResponse struct {
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// TransactionResponse is the API representation of a ledger transaction.
type TransactionResponse struct {
	TransactionID   string                     `json:"transactionID"`
	TransactionType string                     `json:"transactionType"`
	TransactionDate time.Time                  `json:"transactionDate"`
	Description     string                     `json:"description"`
	Reference       string                     `json:"reference,omitempty"`
	Amount          decimal.Decimal            `json:"amount"`
	Status          string                     `json:"status"`
	FiscalYearID    string                     `json:"fiscalYearID"`
	FiscalPeriodID  string                     `json:"fiscalPeriodID"`
	ApprovedBy      *string                    `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time                 `json:"approvedAt,omitempty"`
	PostedAt        *time.Time                 `json:"postedAt,omitempty"`
	VoidedBy        *string                    `json:"voidedBy,omitempty"`
	VoidedAt        *time.Time                 `json:"voidedAt,omitempty"`
	VoidReason      string                     `json:"voidReason,omitempty"`
	RejectReason    string                     `json:"rejectReason,omitempty"`
	CreatedBy       string                     `json:"createdBy"`
	CreatedAt       time.Time                  `json:"createdAt"`
	Entries         []TransactionEntryResponse `json:"entries,omitempty"`
}

// ToTransactionResponse converts a domain transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	entries := make([]TransactionEntryResponse, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = TransactionEntryResponse{
			EntryID:      e.EntryID,
			AccountID:    e.AccountID,
			Description:  e.Description,
			DebitAmount:  e.DebitAmount,
			CreditAmount: e.CreditAmount,
		}
	}
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		TransactionType: string(t.TransactionType),
		TransactionDate: t.TransactionDate,
		Description:     t.Description,
		Reference:       t.Reference,
		Amount:          t.Amount,
		Status:          string(t.Status),
		FiscalYearID:    t.FiscalYearID,
		FiscalPeriodID:  t.FiscalPeriodID,
		ApprovedBy:      t.ApprovedBy,
		ApprovedAt:      t.ApprovedAt,
		PostedAt:        t.PostedAt,
		VoidedBy:        t.VoidedBy,
		VoidedAt:        t.VoidedAt,
		VoidReason:      t.VoidReason,
		RejectReason:    t.RejectReason,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
		Entries:         entries,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
