package services

import (
	"context"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	"github.com/finacct/general_ledger_app/internal/dto"
)

// LedgerReaderSvc defines the pure query operations of the transaction store.
type LedgerReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its entry lines.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListByFiscalYear retrieves all transactions scoped to a fiscal year.
	ListByFiscalYear(ctx context.Context, fiscalYearID string) ([]domain.Transaction, error)

	// ListByFiscalPeriod retrieves all transactions scoped to a fiscal period.
	ListByFiscalPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.Transaction, error)

	// ListByAccount retrieves all transactions touching an account.
	ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// ListByType retrieves all transactions of a type.
	ListByType(ctx context.Context, transactionType domain.TransactionType) ([]domain.Transaction, error)

	// ListByStatus retrieves all transactions in a lifecycle status.
	ListByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error)
}

// LedgerWriterSvc defines the pre-posting lifecycle operations of the
// transaction store. Posting and voiding belong to the PostingSvcFacade.
type LedgerWriterSvc interface {
	// CreateTransaction validates double-entry balance and the open-period gate,
	// then persists the transaction in DRAFT (or PENDING_APPROVAL when
	// submitted directly).
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// SubmitTransaction transitions DRAFT -> PENDING_APPROVAL.
	SubmitTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// ApproveTransaction transitions PENDING_APPROVAL -> APPROVED, recording
	// approver and timestamp. The approver must differ from the creator.
	ApproveTransaction(ctx context.Context, transactionID string, approverUserID string) (*domain.Transaction, error)

	// RejectTransaction transitions PENDING_APPROVAL -> REJECTED with a reason.
	RejectTransaction(ctx context.Context, transactionID string, userID string, reason string) (*domain.Transaction, error)
}

// LedgerSvcFacade combines the transaction store service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
