package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
	"github.com/finacct/general_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// postingService is the posting coordinator. It is the sole writer of account
// balances: post and void each bundle the status transition, every balance
// delta and the audit append into one repository-level atomic operation,
// executed under the shared write lock.
type postingService struct {
	lock        *LedgerLock
	txnRepo     portsrepo.TransactionRepositoryFacade
	balanceRepo portsrepo.BalanceRepositoryFacade
	fiscalRepo  portsrepo.FiscalRepositoryFacade
	authzSvc    portssvc.AuthorizationSvcFacade
}

// NewPostingService creates the posting coordinator.
func NewPostingService(lock *LedgerLock, txnRepo portsrepo.TransactionRepositoryFacade, balanceRepo portsrepo.BalanceRepositoryFacade, fiscalRepo portsrepo.FiscalRepositoryFacade, authzSvc portssvc.AuthorizationSvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		lock:        lock,
		txnRepo:     txnRepo,
		balanceRepo: balanceRepo,
		fiscalRepo:  fiscalRepo,
		authzSvc:    authzSvc,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// buildDeltas aggregates a transaction's entries into one signed delta per
// account, in the raw debit-minus-credit convention. When negate is true the
// deltas reverse a prior posting.
func (s *postingService) buildDeltas(ctx context.Context, txn *domain.Transaction, negate bool) ([]domain.BalanceDelta, error) {
	perAccount := make(map[string]decimal.Decimal)
	order := make([]string, 0, len(txn.Entries))
	for _, e := range txn.Entries {
		if _, seen := perAccount[e.AccountID]; !seen {
			order = append(order, e.AccountID)
		}
		perAccount[e.AccountID] = perAccount[e.AccountID].Add(e.SignedAmount())
	}

	deltas := make([]domain.BalanceDelta, 0, len(order))
	for _, accountID := range order {
		amount := perAccount[accountID]
		if negate {
			amount = amount.Neg()
		}
		seed, err := s.openingSeed(ctx, accountID, txn.FiscalYearID, txn.FiscalPeriodID)
		if err != nil {
			return nil, err
		}
		deltas = append(deltas, domain.BalanceDelta{
			AccountID:      accountID,
			FiscalYearID:   txn.FiscalYearID,
			FiscalPeriodID: txn.FiscalPeriodID,
			Amount:         amount,
			OpeningSeed:    seed,
		})
	}
	return deltas, nil
}

// openingSeed determines the opening balance for a lazily created balance row:
// the prior period's frozen closing balance when one exists, zero otherwise.
// Returns zero when the row already exists (the seed is then unused).
func (s *postingService) openingSeed(ctx context.Context, accountID, fiscalYearID, fiscalPeriodID string) (decimal.Decimal, error) {
	if _, err := s.balanceRepo.FindBalance(ctx, accountID, fiscalYearID, fiscalPeriodID); err == nil {
		return decimal.Zero, nil
	}

	period, err := s.fiscalRepo.FindPeriodByID(ctx, fiscalPeriodID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load fiscal period %s: %w", fiscalPeriodID, err)
	}
	if period.PeriodNumber <= 1 {
		return decimal.Zero, nil
	}

	periods, err := s.fiscalRepo.ListPeriodsByYear(ctx, fiscalYearID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list periods for year %s: %w", fiscalYearID, err)
	}
	for _, p := range periods {
		if p.PeriodNumber != period.PeriodNumber-1 {
			continue
		}
		prior, err := s.balanceRepo.FindBalance(ctx, accountID, fiscalYearID, p.FiscalPeriodID)
		if err != nil {
			// No prior row means no prior activity; seed from zero.
			return decimal.Zero, nil
		}
		if prior.Frozen {
			return prior.ClosingBalance, nil
		}
		return decimal.Zero, nil
	}
	return decimal.Zero, nil
}

// PostTransaction transitions APPROVED -> POSTED and applies the balance
// deltas. The period-open gate is re-checked here: time may have passed
// between approval and posting.
func (s *postingService) PostTransaction(ctx context.Context, transactionID string, posterUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	allowed, err := s.authzSvc.CanPost(ctx, posterUserID)
	if err != nil {
		return nil, fmt.Errorf("authorization check failed: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: user %s may not post transactions", apperrors.ErrForbidden, posterUserID)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if !txn.Status.CanTransitionTo(domain.Posted) {
		return nil, fmt.Errorf("%w: cannot post from %s", apperrors.ErrInvalidStateTransition, txn.Status)
	}

	period, err := s.fiscalRepo.FindPeriodByID(ctx, txn.FiscalPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fiscal period %s: %w", txn.FiscalPeriodID, err)
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: fiscal period %d", apperrors.ErrPeriodClosed, period.PeriodNumber)
	}

	deltas, err := s.buildDeltas(ctx, txn, false)
	if err != nil {
		return nil, err
	}

	prev := txn.Status
	now := time.Now().UTC()
	txn.Status = domain.Posted
	txn.PostedAt = &now
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = posterUserID

	audit := newAuditEntry(domain.ActionPost, domain.EntityTransaction, transactionID, posterUserID,
		fmt.Sprintf("posted %s for %s", txn.TransactionType, txn.Amount.StringFixed(2)),
		statusSnapshot(prev), statusSnapshot(txn.Status))

	if err := s.txnRepo.MarkPosted(ctx, *txn, deltas, audit); err != nil {
		logger.Error("Failed to post transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", transactionID),
		slog.String("amount", txn.Amount.StringFixed(2)),
		slog.Int("entry_count", len(txn.Entries)))
	return txn, nil
}

// VoidTransaction transitions POSTED -> VOIDED, reversing every entry's
// balance impact against the transaction's ORIGINAL fiscal period so that
// historical period balances stay internally consistent. A DRAFT transaction
// may also be voided as a discard, with no balance impact.
func (s *postingService) VoidTransaction(ctx context.Context, transactionID string, voiderUserID string, reason string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	allowed, err := s.authzSvc.CanVoid(ctx, voiderUserID)
	if err != nil {
		return nil, fmt.Errorf("authorization check failed: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: user %s may not void transactions", apperrors.ErrForbidden, voiderUserID)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: void reason is required", apperrors.ErrValidation)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if !txn.Status.CanTransitionTo(domain.Voided) {
		return nil, fmt.Errorf("%w: cannot void from %s", apperrors.ErrInvalidStateTransition, txn.Status)
	}

	var deltas []domain.BalanceDelta
	if txn.Status == domain.Posted {
		period, err := s.fiscalRepo.FindPeriodByID(ctx, txn.FiscalPeriodID)
		if err != nil {
			return nil, fmt.Errorf("failed to load fiscal period %s: %w", txn.FiscalPeriodID, err)
		}
		// Reversal targets the original period; once that period is closed the
		// correction must be a new reversing transaction in an open period.
		if period.Status != domain.PeriodOpen {
			return nil, fmt.Errorf("%w: original fiscal period %d is closed", apperrors.ErrPeriodClosed, period.PeriodNumber)
		}
		deltas, err = s.buildDeltas(ctx, txn, true)
		if err != nil {
			return nil, err
		}
	}

	prev := txn.Status
	now := time.Now().UTC()
	txn.Status = domain.Voided
	txn.VoidedBy = &voiderUserID
	txn.VoidedAt = &now
	txn.VoidReason = reason
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = voiderUserID

	audit := newAuditEntry(domain.ActionVoid, domain.EntityTransaction, transactionID, voiderUserID,
		fmt.Sprintf("voided: %s", reason), statusSnapshot(prev), statusSnapshot(txn.Status))

	if err := s.txnRepo.MarkVoided(ctx, *txn, deltas, audit); err != nil {
		logger.Error("Failed to void transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to void transaction: %w", err)
	}

	logger.Info("Transaction voided", slog.String("transaction_id", transactionID), slog.String("reason", reason))
	return txn, nil
}
