package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the originating module of a ledger transaction.
type TransactionType string

const (
	JournalEntry       TransactionType = "JOURNAL_ENTRY"
	AccountsPayable    TransactionType = "ACCOUNTS_PAYABLE"
	AccountsReceivable TransactionType = "ACCOUNTS_RECEIVABLE"
	TuitionCredit      TransactionType = "TUITION_CREDIT"
	Depreciation       TransactionType = "DEPRECIATION"
	BankAdjustment     TransactionType = "BANK_ADJUSTMENT"
)

// TransactionStatus is the lifecycle state of a ledger transaction.
type TransactionStatus string

const (
	Draft           TransactionStatus = "DRAFT"
	PendingApproval TransactionStatus = "PENDING_APPROVAL"
	Approved        TransactionStatus = "APPROVED"
	Posted          TransactionStatus = "POSTED"
	Voided          TransactionStatus = "VOIDED"
	Rejected        TransactionStatus = "REJECTED"
)

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// transition. The machine is strictly forward:
//
//	DRAFT -> PENDING_APPROVAL -> APPROVED -> POSTED -> VOIDED
//
// with DRAFT -> VOIDED (discard before submission) and
// PENDING_APPROVAL -> REJECTED as the only side exits.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case Draft:
		return next == PendingApproval || next == Voided
	case PendingApproval:
		return next == Approved || next == Rejected
	case Approved:
		return next == Posted
	case Posted:
		return next == Voided
	default: // VOIDED and REJECTED are terminal
		return false
	}
}

// Transaction is the ledger entry header. It exclusively owns its entry lines;
// lines are cascade-created with the transaction and never persisted alone.
type Transaction struct {
	TransactionID   string             `json:"transactionID"` // Primary Key (e.g., UUID)
	TransactionType TransactionType    `json:"transactionType"`
	TransactionDate time.Time          `json:"transactionDate"`
	Description     string             `json:"description"`
	Reference       string             `json:"reference"` // External document reference
	Amount          decimal.Decimal    `json:"amount"`    // Equals sum of debits (== sum of credits)
	Status          TransactionStatus  `json:"status"`
	FiscalYearID    string             `json:"fiscalYearID"`   // FK -> FiscalYear
	FiscalPeriodID  string             `json:"fiscalPeriodID"` // FK -> FiscalPeriod
	ApprovedBy      *string            `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time         `json:"approvedAt,omitempty"`
	PostedAt        *time.Time         `json:"postedAt,omitempty"`
	VoidedBy        *string            `json:"voidedBy,omitempty"`
	VoidedAt        *time.Time         `json:"voidedAt,omitempty"`
	VoidReason      string             `json:"voidReason,omitempty"`
	RejectReason    string             `json:"rejectReason,omitempty"`
	Entries         []TransactionEntry `json:"entries,omitempty"`
	AuditFields
}

// TransactionEntry is a single debit or credit line within a transaction.
// Both amounts are >= 0 and exactly one side is nonzero. Entries are immutable
// once their owning transaction is POSTED; corrections go through a void or a
// new reversing transaction.
type TransactionEntry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (e.g., UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction (Not Null)
	AccountID     string          `json:"accountID"`     // FK -> Account (Not Null)
	Description   string          `json:"description"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	AuditFields
}

// SignedAmount returns the entry's raw balance impact: debit minus credit.
func (e TransactionEntry) SignedAmount() decimal.Decimal {
	return e.DebitAmount.Sub(e.CreditAmount)
}
