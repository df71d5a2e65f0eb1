package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
	"github.com/finacct/general_ledger_app/internal/dto"
	"github.com/finacct/general_ledger_app/internal/middleware"
)

// ledgerService is the transaction store: it owns the append-mostly collection
// of transactions and enforces the double-entry invariant and the lifecycle
// state machine up to APPROVED. Posting and voiding live in postingService.
type ledgerService struct {
	lock      *LedgerLock
	txnRepo   portsrepo.TransactionRepositoryFacade
	fiscalSvc portssvc.FiscalReaderSvc
	chartSvc  portssvc.ChartOfAccountsSvcFacade
	authzSvc  portssvc.AuthorizationSvcFacade
}

// NewLedgerService creates the transaction store service.
func NewLedgerService(lock *LedgerLock, txnRepo portsrepo.TransactionRepositoryFacade, fiscalSvc portssvc.FiscalReaderSvc, chartSvc portssvc.ChartOfAccountsSvcFacade, authzSvc portssvc.AuthorizationSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		lock:      lock,
		txnRepo:   txnRepo,
		fiscalSvc: fiscalSvc,
		chartSvc:  chartSvc,
		authzSvc:  authzSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateEntries checks per-line amount rules and the double-entry invariant:
// sum(debits) == sum(credits) and both sums > 0.
func validateEntries(entries []dto.CreateTransactionEntryRequest) (decimal.Decimal, error) {
	if len(entries) < 2 {
		return decimal.Zero, fmt.Errorf("%w: transaction must have at least two entries", apperrors.ErrValidation)
	}

	debitsSum := decimal.Zero
	creditsSum := decimal.Zero

	for i, e := range entries {
		if e.DebitAmount.IsNegative() || e.CreditAmount.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: entry %d has a negative amount", apperrors.ErrValidation, i)
		}
		if e.DebitAmount.IsZero() && e.CreditAmount.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: entry %d has neither a debit nor a credit amount", apperrors.ErrValidation, i)
		}
		if !e.DebitAmount.IsZero() && !e.CreditAmount.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: entry %d has both a debit and a credit amount", apperrors.ErrValidation, i)
		}
		debitsSum = debitsSum.Add(e.DebitAmount)
		creditsSum = creditsSum.Add(e.CreditAmount)
	}

	if !debitsSum.Equal(creditsSum) {
		return decimal.Zero, fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			apperrors.ErrUnbalancedEntry, debitsSum.String(), creditsSum.String())
	}
	if debitsSum.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: transaction total must be greater than zero", apperrors.ErrUnbalancedEntry)
	}

	return debitsSum, nil
}

// resolveFiscalScope resolves the target year and period, defaulting to the
// current ones, and enforces the open-period gate.
func (s *ledgerService) resolveFiscalScope(ctx context.Context, req dto.CreateTransactionRequest) (*domain.FiscalYear, *domain.FiscalPeriod, error) {
	var year *domain.FiscalYear
	var err error

	if req.FiscalYearID != "" {
		year, err = s.fiscalSvc.GetYearByID(ctx, req.FiscalYearID)
	} else {
		year, err = s.fiscalSvc.GetCurrentYear(ctx)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve fiscal year: %w", err)
	}
	if year.Status != domain.YearOpen {
		return nil, nil, fmt.Errorf("%w: fiscal year %s is %s", apperrors.ErrYearClosed, year.FiscalYearID, year.Status)
	}

	var period *domain.FiscalPeriod
	if req.FiscalPeriodID != "" {
		period, err = s.fiscalSvc.GetPeriodByID(ctx, req.FiscalPeriodID)
	} else {
		period, err = s.fiscalSvc.GetCurrentPeriod(ctx, req.TransactionDate)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve fiscal period: %w", err)
	}
	if period.FiscalYearID != year.FiscalYearID {
		return nil, nil, fmt.Errorf("%w: period %s does not belong to fiscal year %s", apperrors.ErrValidation, period.FiscalPeriodID, year.FiscalYearID)
	}
	if period.Status != domain.PeriodOpen {
		return nil, nil, fmt.Errorf("%w: fiscal period %d of %s", apperrors.ErrPeriodClosed, period.PeriodNumber, year.Name)
	}

	return year, period, nil
}

// CreateTransaction validates and persists a new transaction in DRAFT, or in
// PENDING_APPROVAL when submitted directly. Nothing is persisted on any
// validation failure, including the audit log.
func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	total, err := validateEntries(req.Entries)
	if err != nil {
		return nil, err
	}

	// Creation races with period close for the same period; serialize with it.
	s.lock.Lock()
	defer s.lock.Unlock()

	year, period, err := s.resolveFiscalScope(ctx, req)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(req.Entries))
	for _, e := range req.Entries {
		accountIDs = append(accountIDs, e.AccountID)
	}
	accounts, err := s.chartSvc.GetAccounts(ctx, uniqueStrings(accountIDs))
	if err != nil {
		logger.Error("Failed to fetch accounts for transaction creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", apperrors.ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	status := domain.Draft
	if req.SubmitForApproval {
		status = domain.PendingApproval
	}

	entries := make([]domain.TransactionEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = domain.TransactionEntry{
			EntryID:       uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     e.AccountID,
			Description:   e.Description,
			DebitAmount:   e.DebitAmount,
			CreditAmount:  e.CreditAmount,
			AuditFields:   newAuditFields(creatorUserID, now),
		}
	}

	txn := domain.Transaction{
		TransactionID:   transactionID,
		TransactionType: req.TransactionType,
		TransactionDate: req.TransactionDate,
		Description:     req.Description,
		Reference:       req.Reference,
		Amount:          total,
		Status:          status,
		FiscalYearID:    year.FiscalYearID,
		FiscalPeriodID:  period.FiscalPeriodID,
		Entries:         entries,
		AuditFields:     newAuditFields(creatorUserID, now),
	}

	audit := newAuditEntry(domain.ActionCreate, domain.EntityTransaction, transactionID, creatorUserID,
		fmt.Sprintf("created %s %q for %s", txn.TransactionType, txn.Description, txn.Amount.StringFixed(2)),
		nil, statusSnapshot(status))

	if err := s.txnRepo.SaveTransaction(ctx, txn, audit); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", transactionID),
		slog.String("status", string(status)),
		slog.String("fiscal_period_id", period.FiscalPeriodID))
	return &txn, nil
}

// SubmitTransaction transitions DRAFT -> PENDING_APPROVAL.
func (s *ledgerService) SubmitTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.lock.Lock()
	defer s.lock.Unlock()

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if !txn.Status.CanTransitionTo(domain.PendingApproval) {
		return nil, fmt.Errorf("%w: cannot submit from %s", apperrors.ErrInvalidStateTransition, txn.Status)
	}

	prev := txn.Status
	now := time.Now().UTC()
	txn.Status = domain.PendingApproval
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	audit := newAuditEntry(domain.ActionSubmit, domain.EntityTransaction, transactionID, userID,
		"submitted for approval", statusSnapshot(prev), statusSnapshot(txn.Status))

	if err := s.txnRepo.UpdateTransactionStatus(ctx, *txn, audit); err != nil {
		logger.Error("Failed to submit transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}

	logger.Info("Transaction submitted", slog.String("transaction_id", transactionID))
	return txn, nil
}

// ApproveTransaction transitions PENDING_APPROVAL -> APPROVED. The approver
// must hold the approval role and must not be the creator.
func (s *ledgerService) ApproveTransaction(ctx context.Context, transactionID string, approverUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	allowed, err := s.authzSvc.CanApprove(ctx, approverUserID)
	if err != nil {
		return nil, fmt.Errorf("authorization check failed: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: user %s may not approve transactions", apperrors.ErrForbidden, approverUserID)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if !txn.Status.CanTransitionTo(domain.Approved) {
		return nil, fmt.Errorf("%w: cannot approve from %s", apperrors.ErrInvalidStateTransition, txn.Status)
	}
	if txn.CreatedBy == approverUserID {
		return nil, fmt.Errorf("%w: creator may not approve their own transaction", apperrors.ErrForbidden)
	}

	prev := txn.Status
	now := time.Now().UTC()
	txn.Status = domain.Approved
	txn.ApprovedBy = &approverUserID
	txn.ApprovedAt = &now
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = approverUserID

	audit := newAuditEntry(domain.ActionApprove, domain.EntityTransaction, transactionID, approverUserID,
		"approved", statusSnapshot(prev), statusSnapshot(txn.Status))

	if err := s.txnRepo.UpdateTransactionStatus(ctx, *txn, audit); err != nil {
		logger.Error("Failed to approve transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to approve transaction: %w", err)
	}

	logger.Info("Transaction approved", slog.String("transaction_id", transactionID), slog.String("approver", approverUserID))
	return txn, nil
}

// RejectTransaction transitions PENDING_APPROVAL -> REJECTED with a reason.
func (s *ledgerService) RejectTransaction(ctx context.Context, transactionID string, userID string, reason string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	allowed, err := s.authzSvc.CanApprove(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("authorization check failed: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: user %s may not reject transactions", apperrors.ErrForbidden, userID)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if !txn.Status.CanTransitionTo(domain.Rejected) {
		return nil, fmt.Errorf("%w: cannot reject from %s", apperrors.ErrInvalidStateTransition, txn.Status)
	}

	prev := txn.Status
	now := time.Now().UTC()
	txn.Status = domain.Rejected
	txn.RejectReason = reason
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	audit := newAuditEntry(domain.ActionReject, domain.EntityTransaction, transactionID, userID,
		fmt.Sprintf("rejected: %s", reason), statusSnapshot(prev), statusSnapshot(txn.Status))

	if err := s.txnRepo.UpdateTransactionStatus(ctx, *txn, audit); err != nil {
		logger.Error("Failed to reject transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to reject transaction: %w", err)
	}

	logger.Info("Transaction rejected", slog.String("transaction_id", transactionID))
	return txn, nil
}

// GetTransactionByID retrieves a transaction with its entries.
func (s *ledgerService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListByFiscalYear retrieves all transactions scoped to a fiscal year.
func (s *ledgerService) ListByFiscalYear(ctx context.Context, fiscalYearID string) ([]domain.Transaction, error) {
	return s.txnRepo.ListTransactionsByFiscalYear(ctx, fiscalYearID)
}

// ListByFiscalPeriod retrieves all transactions scoped to a fiscal period.
func (s *ledgerService) ListByFiscalPeriod(ctx context.Context, fiscalPeriodID string) ([]domain.Transaction, error) {
	return s.txnRepo.ListTransactionsByFiscalPeriod(ctx, fiscalPeriodID)
}

// ListByAccount retrieves all transactions touching an account.
func (s *ledgerService) ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return s.txnRepo.ListTransactionsByAccount(ctx, accountID)
}

// ListByType retrieves all transactions of a type.
func (s *ledgerService) ListByType(ctx context.Context, transactionType domain.TransactionType) ([]domain.Transaction, error) {
	return s.txnRepo.ListTransactionsByType(ctx, transactionType)
}

// ListByStatus retrieves all transactions in a lifecycle status.
func (s *ledgerService) ListByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	return s.txnRepo.ListTransactionsByStatus(ctx, status)
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
