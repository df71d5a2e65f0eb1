package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
)

// PgxFiscalRepository persists the fiscal calendar.
type PgxFiscalRepository struct {
	BaseRepository
}

func newPgxFiscalRepository(pool *pgxpool.Pool) portsrepo.FiscalRepositoryFacade {
	return &PgxFiscalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalRepositoryFacade = (*PgxFiscalRepository)(nil)

const fiscalYearColumns = `
	fiscal_year_id, name, start_date, end_date, status, is_current, closed_at,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanFiscalYear(row pgx.Row) (*domain.FiscalYear, error) {
	var year domain.FiscalYear
	err := row.Scan(
		&year.FiscalYearID,
		&year.Name,
		&year.StartDate,
		&year.EndDate,
		&year.Status,
		&year.IsCurrent,
		&year.ClosedAt,
		&year.CreatedAt,
		&year.CreatedBy,
		&year.LastUpdatedAt,
		&year.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan fiscal year", err)
	}
	return &year, nil
}

// FindYearByID retrieves a fiscal year by its unique identifier.
func (r *PgxFiscalRepository) FindYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE fiscal_year_id = $1;`
	return scanFiscalYear(r.Pool.QueryRow(ctx, query, fiscalYearID))
}

// FindCurrentYear retrieves the fiscal year flagged current.
func (r *PgxFiscalRepository) FindCurrentYear(ctx context.Context) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE is_current = TRUE;`
	return scanFiscalYear(r.Pool.QueryRow(ctx, query))
}

// ListYears retrieves all fiscal years ordered by start date.
func (r *PgxFiscalRepository) ListYears(ctx context.Context) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years ORDER BY start_date;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list fiscal years", err)
	}
	defer rows.Close()

	var years []domain.FiscalYear
	for rows.Next() {
		year, err := scanFiscalYear(rows)
		if err != nil {
			return nil, err
		}
		years = append(years, *year)
	}
	return years, rows.Err()
}

const fiscalPeriodColumns = `
	fiscal_period_id, fiscal_year_id, period_number, start_date, end_date, status,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanFiscalPeriod(row pgx.Row) (*domain.FiscalPeriod, error) {
	var period domain.FiscalPeriod
	err := row.Scan(
		&period.FiscalPeriodID,
		&period.FiscalYearID,
		&period.PeriodNumber,
		&period.StartDate,
		&period.EndDate,
		&period.Status,
		&period.CreatedAt,
		&period.CreatedBy,
		&period.LastUpdatedAt,
		&period.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan fiscal period", err)
	}
	return &period, nil
}

// FindPeriodByID retrieves a fiscal period by its unique identifier.
func (r *PgxFiscalRepository) FindPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE fiscal_period_id = $1;`
	return scanFiscalPeriod(r.Pool.QueryRow(ctx, query, fiscalPeriodID))
}

// FindPeriodByDate retrieves the period of the given year containing the date.
func (r *PgxFiscalRepository) FindPeriodByDate(ctx context.Context, fiscalYearID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods
		WHERE fiscal_year_id = $1 AND start_date <= $2 AND end_date >= $2;`
	return scanFiscalPeriod(r.Pool.QueryRow(ctx, query, fiscalYearID, date))
}

// ListPeriodsByYear retrieves all periods of a year ordered by period number.
func (r *PgxFiscalRepository) ListPeriodsByYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + fiscalPeriodColumns + ` FROM fiscal_periods WHERE fiscal_year_id = $1 ORDER BY period_number;`
	rows, err := r.Pool.Query(ctx, query, fiscalYearID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list fiscal periods for year "+fiscalYearID, err)
	}
	defer rows.Close()

	var periods []domain.FiscalPeriod
	for rows.Next() {
		period, err := scanFiscalPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, *period)
	}
	return periods, rows.Err()
}

// SaveYear persists a new fiscal year together with its audit entry.
func (r *PgxFiscalRepository) SaveYear(ctx context.Context, year domain.FiscalYear, audit domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO fiscal_years (fiscal_year_id, name, start_date, end_date, status, is_current, closed_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		year.FiscalYearID,
		year.Name,
		year.StartDate,
		year.EndDate,
		year.Status,
		year.IsCurrent,
		year.ClosedAt,
		year.CreatedAt,
		year.CreatedBy,
		year.LastUpdatedAt,
		year.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert fiscal year "+year.FiscalYearID, err)
	}

	if err := insertAuditEntryTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SavePeriod persists a new fiscal period together with its audit entry.
func (r *PgxFiscalRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod, audit domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO fiscal_periods (fiscal_period_id, fiscal_year_id, period_number, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		period.FiscalPeriodID,
		period.FiscalYearID,
		period.PeriodNumber,
		period.StartDate,
		period.EndDate,
		period.Status,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert fiscal period "+period.FiscalPeriodID, err)
	}

	if err := insertAuditEntryTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// OpenYear flips the target year to OPEN/current and demotes the previous
// current year in one database transaction.
func (r *PgxFiscalRepository) OpenYear(ctx context.Context, target domain.FiscalYear, previousCurrent *domain.FiscalYear, audit domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if previousCurrent != nil {
		demoteQuery := `UPDATE fiscal_years SET is_current = FALSE, last_updated_at = $2, last_updated_by = $3 WHERE fiscal_year_id = $1;`
		if _, err := tx.Exec(ctx, demoteQuery, previousCurrent.FiscalYearID, target.LastUpdatedAt, target.LastUpdatedBy); err != nil {
			return apperrors.NewAppError(500, "failed to demote current fiscal year "+previousCurrent.FiscalYearID, err)
		}
	}

	promoteQuery := `UPDATE fiscal_years SET status = $2, is_current = TRUE, last_updated_at = $3, last_updated_by = $4 WHERE fiscal_year_id = $1;`
	if _, err := tx.Exec(ctx, promoteQuery, target.FiscalYearID, domain.YearOpen, target.LastUpdatedAt, target.LastUpdatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to open fiscal year "+target.FiscalYearID, err)
	}

	if err := insertAuditEntryTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ClosePeriod marks the period CLOSED and freezes every balance row scoped to
// it in one database transaction.
func (r *PgxFiscalRepository) ClosePeriod(ctx context.Context, period domain.FiscalPeriod, audit domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	closeQuery := `UPDATE fiscal_periods SET status = $2, last_updated_at = $3, last_updated_by = $4 WHERE fiscal_period_id = $1;`
	if _, err := tx.Exec(ctx, closeQuery, period.FiscalPeriodID, domain.PeriodClosed, period.LastUpdatedAt, period.LastUpdatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to close fiscal period "+period.FiscalPeriodID, err)
	}

	freezeQuery := `
		UPDATE account_balances
		SET closing_balance = current_balance, frozen = TRUE, last_updated = $2
		WHERE fiscal_period_id = $1;
	`
	if _, err := tx.Exec(ctx, freezeQuery, period.FiscalPeriodID, period.LastUpdatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to freeze balances for period "+period.FiscalPeriodID, err)
	}

	if err := insertAuditEntryTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// CloseYear marks the year CLOSED and promotes the next pending year, when
// given, in one database transaction.
func (r *PgxFiscalRepository) CloseYear(ctx context.Context, year domain.FiscalYear, nextCurrent *domain.FiscalYear, audit domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	closeQuery := `UPDATE fiscal_years SET status = $2, is_current = FALSE, closed_at = $3, last_updated_at = $4, last_updated_by = $5 WHERE fiscal_year_id = $1;`
	if _, err := tx.Exec(ctx, closeQuery, year.FiscalYearID, domain.YearClosed, year.ClosedAt, year.LastUpdatedAt, year.LastUpdatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to close fiscal year "+year.FiscalYearID, err)
	}

	if nextCurrent != nil {
		promoteQuery := `UPDATE fiscal_years SET status = $2, is_current = TRUE, last_updated_at = $3, last_updated_by = $4 WHERE fiscal_year_id = $1;`
		if _, err := tx.Exec(ctx, promoteQuery, nextCurrent.FiscalYearID, domain.YearOpen, year.LastUpdatedAt, year.LastUpdatedBy); err != nil {
			return apperrors.NewAppError(500, "failed to promote fiscal year "+nextCurrent.FiscalYearID, err)
		}
	}

	if err := insertAuditEntryTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
