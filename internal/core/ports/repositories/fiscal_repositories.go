package repositories

import (
	"context"
	"time"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// FiscalReader defines read operations for fiscal calendar data.
type FiscalReader interface {
	// FindYearByID retrieves a fiscal year by its unique identifier.
	FindYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// FindCurrentYear retrieves the fiscal year flagged current, or ErrNotFound.
	FindCurrentYear(ctx context.Context) (*domain.FiscalYear, error)

	// ListYears retrieves all fiscal years ordered by start date.
	ListYears(ctx context.Context) ([]domain.FiscalYear, error)

	// FindPeriodByID retrieves a fiscal period by its unique identifier.
	FindPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error)

	// FindPeriodByDate retrieves the period of the given year containing the date.
	FindPeriodByDate(ctx context.Context, fiscalYearID string, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriodsByYear retrieves all periods of a year ordered by period number.
	ListPeriodsByYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error)
}

// FiscalWriter defines write operations for fiscal calendar data. Every write
// persists the supplied audit entry in the same atomic unit.
type FiscalWriter interface {
	// SaveYear persists a new fiscal year.
	SaveYear(ctx context.Context, year domain.FiscalYear, audit domain.AuditLogEntry) error

	// SavePeriod persists a new fiscal period.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod, audit domain.AuditLogEntry) error

	// OpenYear transitions target to OPEN/current and clears the current flag of
	// previousCurrent (may be nil) in one atomic unit.
	OpenYear(ctx context.Context, target domain.FiscalYear, previousCurrent *domain.FiscalYear, audit domain.AuditLogEntry) error

	// ClosePeriod transitions the period to CLOSED and freezes every account
	// balance row scoped to it (closingBalance = currentBalance) atomically.
	ClosePeriod(ctx context.Context, period domain.FiscalPeriod, audit domain.AuditLogEntry) error

	// CloseYear transitions the year to CLOSED and, when nextCurrent is not nil,
	// promotes it to OPEN/current in the same atomic unit.
	CloseYear(ctx context.Context, year domain.FiscalYear, nextCurrent *domain.FiscalYear, audit domain.AuditLogEntry) error
}

// FiscalRepositoryFacade combines all fiscal calendar repository interfaces.
type FiscalRepositoryFacade interface {
	FiscalReader
	FiscalWriter
}
