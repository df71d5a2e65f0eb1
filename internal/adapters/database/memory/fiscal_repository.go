package memory

import (
	"context"
	"sort"
	"time"

	"github.com/finacct/general_ledger_app/internal/apperrors"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
)

type fiscalRepository struct {
	store *store
}

var _ portsrepo.FiscalRepositoryFacade = (*fiscalRepository)(nil)

func (r *fiscalRepository) FindYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	year, ok := r.store.years[fiscalYearID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &year, nil
}

func (r *fiscalRepository) FindCurrentYear(ctx context.Context) (*domain.FiscalYear, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, year := range r.store.years {
		if year.IsCurrent {
			y := year
			return &y, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fiscalRepository) ListYears(ctx context.Context) ([]domain.FiscalYear, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	years := make([]domain.FiscalYear, 0, len(r.store.years))
	for _, year := range r.store.years {
		years = append(years, year)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].StartDate.Before(years[j].StartDate) })
	return years, nil
}

func (r *fiscalRepository) FindPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	period, ok := r.store.periods[fiscalPeriodID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &period, nil
}

func (r *fiscalRepository) FindPeriodByDate(ctx context.Context, fiscalYearID string, date time.Time) (*domain.FiscalPeriod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, period := range r.store.periods {
		if period.FiscalYearID == fiscalYearID && !date.Before(period.StartDate) && !date.After(period.EndDate) {
			p := period
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fiscalRepository) ListPeriodsByYear(ctx context.Context, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var periods []domain.FiscalPeriod
	for _, period := range r.store.periods {
		if period.FiscalYearID == fiscalYearID {
			periods = append(periods, period)
		}
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].PeriodNumber < periods[j].PeriodNumber })
	return periods, nil
}

func (r *fiscalRepository) SaveYear(ctx context.Context, year domain.FiscalYear, audit domain.AuditLogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.years[year.FiscalYearID]; exists {
		return apperrors.ErrDuplicate
	}
	r.store.years[year.FiscalYearID] = year
	r.store.audit = append(r.store.audit, audit)
	return nil
}

func (r *fiscalRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod, audit domain.AuditLogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.periods[period.FiscalPeriodID]; exists {
		return apperrors.ErrDuplicate
	}
	r.store.periods[period.FiscalPeriodID] = period
	r.store.audit = append(r.store.audit, audit)
	return nil
}

func (r *fiscalRepository) OpenYear(ctx context.Context, target domain.FiscalYear, previousCurrent *domain.FiscalYear, audit domain.AuditLogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	year, ok := r.store.years[target.FiscalYearID]
	if !ok {
		return apperrors.ErrNotFound
	}

	if previousCurrent != nil {
		prev, ok := r.store.years[previousCurrent.FiscalYearID]
		if ok {
			prev.IsCurrent = false
			prev.LastUpdatedAt = target.LastUpdatedAt
			prev.LastUpdatedBy = target.LastUpdatedBy
			r.store.years[prev.FiscalYearID] = prev
		}
	}

	year.Status = domain.YearOpen
	year.IsCurrent = true
	year.LastUpdatedAt = target.LastUpdatedAt
	year.LastUpdatedBy = target.LastUpdatedBy
	r.store.years[year.FiscalYearID] = year
	r.store.audit = append(r.store.audit, audit)
	return nil
}

func (r *fiscalRepository) ClosePeriod(ctx context.Context, period domain.FiscalPeriod, audit domain.AuditLogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.periods[period.FiscalPeriodID]
	if !ok {
		return apperrors.ErrNotFound
	}

	stored.Status = domain.PeriodClosed
	stored.LastUpdatedAt = period.LastUpdatedAt
	stored.LastUpdatedBy = period.LastUpdatedBy
	r.store.periods[stored.FiscalPeriodID] = stored

	for key, balance := range r.store.balances {
		if key.FiscalPeriodID == period.FiscalPeriodID {
			balance.ClosingBalance = balance.CurrentBalance
			balance.Frozen = true
			balance.LastUpdated = period.LastUpdatedAt
			r.store.balances[key] = balance
		}
	}

	r.store.audit = append(r.store.audit, audit)
	return nil
}

func (r *fiscalRepository) CloseYear(ctx context.Context, year domain.FiscalYear, nextCurrent *domain.FiscalYear, audit domain.AuditLogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.years[year.FiscalYearID]
	if !ok {
		return apperrors.ErrNotFound
	}

	stored.Status = domain.YearClosed
	stored.IsCurrent = false
	stored.ClosedAt = year.ClosedAt
	stored.LastUpdatedAt = year.LastUpdatedAt
	stored.LastUpdatedBy = year.LastUpdatedBy
	r.store.years[stored.FiscalYearID] = stored

	if nextCurrent != nil {
		next, ok := r.store.years[nextCurrent.FiscalYearID]
		if ok {
			next.Status = domain.YearOpen
			next.IsCurrent = true
			next.LastUpdatedAt = year.LastUpdatedAt
			next.LastUpdatedBy = year.LastUpdatedBy
			r.store.years[next.FiscalYearID] = next
		}
	}

	r.store.audit = append(r.store.audit, audit)
	return nil
}
