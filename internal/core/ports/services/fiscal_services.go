package services

import (
	"context"
	"time"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	"github.com/finacct/general_ledger_app/internal/dto"
)

// FiscalReaderSvc defines read operations on the fiscal calendar.
type FiscalReaderSvc interface {
	// GetCurrentYear returns the fiscal year flagged current, or ErrNotFound if
	// the calendar is uninitialized.
	GetCurrentYear(ctx context.Context) (*domain.FiscalYear, error)

	// GetCurrentPeriod returns the open period of the current year containing
	// the given date, or ErrNotFound. Callers must treat absence as a hard stop
	// for posting.
	GetCurrentPeriod(ctx context.Context, at time.Time) (*domain.FiscalPeriod, error)

	// GetYearByID returns a fiscal year by ID.
	GetYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// GetPeriodByID returns a fiscal period by ID.
	GetPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error)

	// ListYears returns all fiscal years ordered by start date.
	ListYears(ctx context.Context) ([]domain.FiscalYear, error)

	// ListPeriods returns a year's periods ordered by period number.
	ListPeriods(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error)
}

// FiscalWriterSvc defines lifecycle operations on the fiscal calendar.
type FiscalWriterSvc interface {
	// CreateYear creates a fiscal year in PENDING status.
	CreateYear(ctx context.Context, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error)

	// CreatePeriod adds a period to a year. Periods must be contiguous and
	// non-overlapping within the year or ErrInvalidPeriodRange is returned.
	CreatePeriod(ctx context.Context, req dto.CreateFiscalPeriodRequest, creatorUserID string) (*domain.FiscalPeriod, error)

	// OpenYear transitions a PENDING year to OPEN and makes it current,
	// clearing the previously current year's flag. Fails with ErrConflict if
	// another year is already OPEN and current.
	OpenYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error)

	// ClosePeriod closes a period and freezes its balances. Fails with
	// ErrPeriodHasOpenTransactions while DRAFT or PENDING_APPROVAL transactions
	// reference the period.
	ClosePeriod(ctx context.Context, fiscalPeriodID string, userID string) (*domain.FiscalPeriod, error)

	// CloseYear closes a year once every child period is CLOSED and advances
	// current to the next PENDING year if one exists.
	CloseYear(ctx context.Context, fiscalYearID string, userID string) (*domain.FiscalYear, error)
}

// FiscalSvcFacade combines the fiscal calendar service interfaces.
type FiscalSvcFacade interface {
	FiscalReaderSvc
	FiscalWriterSvc
}
