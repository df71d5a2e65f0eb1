package domain

import "time"

// FiscalYearStatus indicates the lifecycle state of a fiscal year.
type FiscalYearStatus string

const (
	YearPending FiscalYearStatus = "PENDING"
	YearOpen    FiscalYearStatus = "OPEN"
	YearClosed  FiscalYearStatus = "CLOSED"
)

// FiscalPeriodStatus indicates whether a fiscal period accepts postings.
type FiscalPeriodStatus string

const (
	PeriodOpen   FiscalPeriodStatus = "OPEN"
	PeriodClosed FiscalPeriodStatus = "CLOSED"
)

// FiscalYear is the top-level unit of the accounting calendar.
// At most one year is current at a time; closing is irreversible.
type FiscalYear struct {
	FiscalYearID string           `json:"fiscalYearID"` // Primary Key (e.g., UUID)
	Name         string           `json:"name"`         // e.g. "FY 2026"
	StartDate    time.Time        `json:"startDate"`
	EndDate      time.Time        `json:"endDate"`
	Status       FiscalYearStatus `json:"status"`
	IsCurrent    bool             `json:"isCurrent"`
	ClosedAt     *time.Time       `json:"closedAt,omitempty"` // Set once, on close
	AuditFields
}

// FiscalPeriod subdivides a fiscal year. Periods are 1-based, contiguous and
// non-overlapping within their year.
type FiscalPeriod struct {
	FiscalPeriodID string             `json:"fiscalPeriodID"` // Primary Key (e.g., UUID)
	FiscalYearID   string             `json:"fiscalYearID"`   // FK -> FiscalYear
	PeriodNumber   int                `json:"periodNumber"`   // 1-based, unique within year
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	Status         FiscalPeriodStatus `json:"status"`
	AuditFields
}
