package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
	"github.com/finacct/general_ledger_app/internal/dto"
	"github.com/finacct/general_ledger_app/internal/middleware"
)

// fiscalService implements the fiscal calendar: year/period lifecycle and the
// open/closed gating that the transaction store and posting coordinator rely on.
type fiscalService struct {
	lock       *LedgerLock
	fiscalRepo portsrepo.FiscalRepositoryFacade
	txnRepo    portsrepo.TransactionReader
	authzSvc   portssvc.AuthorizationSvcFacade
}

// NewFiscalService creates the fiscal calendar service.
func NewFiscalService(lock *LedgerLock, fiscalRepo portsrepo.FiscalRepositoryFacade, txnRepo portsrepo.TransactionReader, authzSvc portssvc.AuthorizationSvcFacade) portssvc.FiscalSvcFacade {
	return &fiscalService{
		lock:       lock,
		fiscalRepo: fiscalRepo,
		txnRepo:    txnRepo,
		authzSvc:   authzSvc,
	}
}

var _ portssvc.FiscalSvcFacade = (*fiscalService)(nil)

// GetCurrentYear returns the fiscal year flagged current.
func (s *fiscalService) GetCurrentYear(ctx context.Context) (*domain.FiscalYear, error) {
	year, err := s.fiscalRepo.FindCurrentYear(ctx)
	if err != nil {
		return nil, fmt.Errorf("no current fiscal year: %w", err)
	}
	return year, nil
}

// GetCurrentPeriod returns the current year's period containing the date.
func (s *fiscalService) GetCurrentPeriod(ctx context.Context, at time.Time) (*domain.FiscalPeriod, error) {
	year, err := s.fiscalRepo.FindCurrentYear(ctx)
	if err != nil {
		return nil, fmt.Errorf("no current fiscal year: %w", err)
	}
	period, err := s.fiscalRepo.FindPeriodByDate(ctx, year.FiscalYearID, at)
	if err != nil {
		return nil, fmt.Errorf("no fiscal period covers %s in year %s: %w", at.Format("2006-01-02"), year.Name, err)
	}
	return period, nil
}

// GetYearByID returns a fiscal year by ID.
func (s *fiscalService) GetYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	return s.fiscalRepo.FindYearByID(ctx, fiscalYearID)
}

// GetPeriodByID returns a fiscal period by ID.
func (s *fiscalService) GetPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	return s.fiscalRepo.FindPeriodByID(ctx, fiscalPeriodID)
}

// ListYears returns all fiscal years ordered by start date.
func (s *fiscalService) ListYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return s.fiscalRepo.ListYears(ctx)
}

// ListPeriods returns a year's periods ordered by period number.
func (s *fiscalService) ListPeriods(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	return s.fiscalRepo.ListPeriodsByYear(ctx, fiscalYearID)
}

// CreateYear creates a fiscal year in PENDING status.
func (s *fiscalService) CreateYear(ctx context.Context, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: year end date must be after start date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	year := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Name:         req.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       domain.YearPending,
		IsCurrent:    false,
		AuditFields:  newAuditFields(creatorUserID, now),
	}

	audit := newAuditEntry(domain.ActionCreate, domain.EntityFiscalYear, year.FiscalYearID, creatorUserID,
		fmt.Sprintf("created fiscal year %q", year.Name), nil, nil)

	if err := s.fiscalRepo.SaveYear(ctx, year, audit); err != nil {
		logger.Error("Failed to save fiscal year", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save fiscal year: %w", err)
	}

	logger.Info("Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID), slog.String("name", year.Name))
	return &year, nil
}

// CreatePeriod adds a period to a year, enforcing the contiguous and
// non-overlapping range invariant against the year's existing periods.
func (s *fiscalService) CreatePeriod(ctx context.Context, req dto.CreateFiscalPeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	year, err := s.fiscalRepo.FindYearByID(ctx, req.FiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", req.FiscalYearID, err)
	}
	if year.Status == domain.YearClosed {
		return nil, fmt.Errorf("%w: cannot add periods to a closed year", apperrors.ErrYearClosed)
	}

	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: period end date must be after start date", apperrors.ErrInvalidPeriodRange)
	}
	if req.StartDate.Before(year.StartDate) || req.EndDate.After(year.EndDate) {
		return nil, fmt.Errorf("%w: period must fall within the fiscal year", apperrors.ErrInvalidPeriodRange)
	}

	existing, err := s.fiscalRepo.ListPeriodsByYear(ctx, req.FiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods for year %s: %w", req.FiscalYearID, err)
	}
	if err := validatePeriodRange(req, existing); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		FiscalPeriodID: uuid.NewString(),
		FiscalYearID:   req.FiscalYearID,
		PeriodNumber:   req.PeriodNumber,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         domain.PeriodOpen,
		AuditFields:    newAuditFields(creatorUserID, now),
	}

	audit := newAuditEntry(domain.ActionCreate, domain.EntityFiscalPeriod, period.FiscalPeriodID, creatorUserID,
		fmt.Sprintf("created period %d of %q", period.PeriodNumber, year.Name), nil, nil)

	if err := s.fiscalRepo.SavePeriod(ctx, period, audit); err != nil {
		logger.Error("Failed to save fiscal period", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save fiscal period: %w", err)
	}

	logger.Info("Fiscal period created", slog.String("fiscal_period_id", period.FiscalPeriodID), slog.Int("period_number", period.PeriodNumber))
	return &period, nil
}

// validatePeriodRange enforces uniqueness of the period number, no date
// overlap with existing periods, and contiguity with adjacent numbers.
func validatePeriodRange(req dto.CreateFiscalPeriodRequest, existing []domain.FiscalPeriod) error {
	for _, p := range existing {
		if p.PeriodNumber == req.PeriodNumber {
			return fmt.Errorf("%w: period number %d already exists", apperrors.ErrInvalidPeriodRange, req.PeriodNumber)
		}
		if !req.StartDate.After(p.EndDate) && !req.EndDate.Before(p.StartDate) {
			return fmt.Errorf("%w: period %d overlaps period %d", apperrors.ErrInvalidPeriodRange, req.PeriodNumber, p.PeriodNumber)
		}
		if p.PeriodNumber == req.PeriodNumber-1 && !req.StartDate.Equal(p.EndDate.AddDate(0, 0, 1)) {
			return fmt.Errorf("%w: period %d must start the day after period %d ends", apperrors.ErrInvalidPeriodRange, req.PeriodNumber, p.PeriodNumber)
		}
		if p.PeriodNumber == req.PeriodNumber+1 && !p.StartDate.Equal(req.EndDate.AddDate(0, 0, 1)) {
			return fmt.Errorf("%w: period %d must end the day before period %d starts", apperrors.ErrInvalidPeriodRange, req.PeriodNumber, p.PeriodNumber)
		}
	}
	return nil
}

// OpenYear transitions a PENDING year to OPEN and makes it current.
func (s *fiscalService) OpenYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	allowed, err := s.authzSvc.CanClose(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("authorization check failed: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: user %s may not manage the fiscal calendar", apperrors.ErrForbidden, userID)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	year, err := s.fiscalRepo.FindYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	if year.Status != domain.YearPending {
		return nil, fmt.Errorf("%w: year %s is %s, expected PENDING", apperrors.ErrConflict, year.Name, year.Status)
	}

	previous, err := s.fiscalRepo.FindCurrentYear(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up current year: %w", err)
	}
	if previous != nil && previous.Status == domain.YearOpen {
		return nil, fmt.Errorf("%w: fiscal year %s is already open and current", apperrors.ErrConflict, previous.Name)
	}

	now := time.Now().UTC()
	year.Status = domain.YearOpen
	year.IsCurrent = true
	year.LastUpdatedAt = now
	year.LastUpdatedBy = userID

	audit := newAuditEntry(domain.ActionOpen, domain.EntityFiscalYear, year.FiscalYearID, userID,
		fmt.Sprintf("opened fiscal year %q", year.Name), nil, nil)

	if err := s.fiscalRepo.OpenYear(ctx, *year, previous, audit); err != nil {
		logger.Error("Failed to open fiscal year", slog.String("error", err.Error()), slog.String("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to open fiscal year: %w", err)
	}

	logger.Info("Fiscal year opened", slog.String("fiscal_year_id", fiscalYearID), slog.String("name", year.Name))
	return year, nil
}

// ClosePeriod closes a period and freezes its balances. The open-transactions
// check runs under the shared write lock, so no transaction can sneak into
// DRAFT between the check and the status flip.
func (s *fiscalService) ClosePeriod(ctx context.Context, fiscalPeriodID string, userID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	allowed, err := s.authzSvc.CanClose(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("authorization check failed: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: user %s may not close fiscal periods", apperrors.ErrForbidden, userID)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	period, err := s.fiscalRepo.FindPeriodByID(ctx, fiscalPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal period %s: %w", fiscalPeriodID, err)
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %d is already closed", apperrors.ErrConflict, period.PeriodNumber)
	}

	open, err := s.txnRepo.CountTransactionsByPeriodAndStatuses(ctx, fiscalPeriodID,
		[]domain.TransactionStatus{domain.Draft, domain.PendingApproval})
	if err != nil {
		return nil, fmt.Errorf("failed to count open transactions: %w", err)
	}
	if open > 0 {
		return nil, fmt.Errorf("%w: %d transactions still in DRAFT or PENDING_APPROVAL", apperrors.ErrPeriodHasOpenTransactions, open)
	}

	now := time.Now().UTC()
	period.Status = domain.PeriodClosed
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	audit := newAuditEntry(domain.ActionClose, domain.EntityFiscalPeriod, period.FiscalPeriodID, userID,
		fmt.Sprintf("closed period %d and froze balances", period.PeriodNumber), nil, nil)

	if err := s.fiscalRepo.ClosePeriod(ctx, *period, audit); err != nil {
		logger.Error("Failed to close fiscal period", slog.String("error", err.Error()), slog.String("fiscal_period_id", fiscalPeriodID))
		return nil, fmt.Errorf("failed to close fiscal period: %w", err)
	}

	logger.Info("Fiscal period closed", slog.String("fiscal_period_id", fiscalPeriodID), slog.Int("period_number", period.PeriodNumber))
	return period, nil
}

// CloseYear closes a year once all its periods are CLOSED, and advances
// current to the next PENDING year if one exists.
func (s *fiscalService) CloseYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	allowed, err := s.authzSvc.CanClose(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("authorization check failed: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: user %s may not close fiscal years", apperrors.ErrForbidden, userID)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	year, err := s.fiscalRepo.FindYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	if year.Status != domain.YearOpen {
		return nil, fmt.Errorf("%w: year %s is %s, expected OPEN", apperrors.ErrConflict, year.Name, year.Status)
	}

	periods, err := s.fiscalRepo.ListPeriodsByYear(ctx, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods for year %s: %w", fiscalYearID, err)
	}
	for _, p := range periods {
		if p.Status != domain.PeriodClosed {
			return nil, fmt.Errorf("%w: period %d is still open", apperrors.ErrYearHasOpenPeriods, p.PeriodNumber)
		}
	}

	next, err := s.nextPendingYear(ctx, year)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	year.Status = domain.YearClosed
	year.IsCurrent = false
	year.ClosedAt = &now
	year.LastUpdatedAt = now
	year.LastUpdatedBy = userID

	if next != nil {
		next.Status = domain.YearOpen
		next.IsCurrent = true
		next.LastUpdatedAt = now
		next.LastUpdatedBy = userID
	}

	audit := newAuditEntry(domain.ActionClose, domain.EntityFiscalYear, year.FiscalYearID, userID,
		fmt.Sprintf("closed fiscal year %q", year.Name), nil, nil)

	if err := s.fiscalRepo.CloseYear(ctx, *year, next, audit); err != nil {
		logger.Error("Failed to close fiscal year", slog.String("error", err.Error()), slog.String("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to close fiscal year: %w", err)
	}

	logger.Info("Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID), slog.String("name", year.Name))
	return year, nil
}

// nextPendingYear finds the earliest PENDING year starting after the given
// year, or nil when there is none.
func (s *fiscalService) nextPendingYear(ctx context.Context, after *domain.FiscalYear) (*domain.FiscalYear, error) {
	years, err := s.fiscalRepo.ListYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	var next *domain.FiscalYear
	for i := range years {
		y := years[i]
		if y.Status != domain.YearPending || y.StartDate.Before(after.StartDate) {
			continue
		}
		if next == nil || y.StartDate.Before(next.StartDate) {
			next = &years[i]
		}
	}
	return next, nil
}
