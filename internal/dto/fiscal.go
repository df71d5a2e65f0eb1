package dto

import (
	"time"

	"github.com/finacct/general_ledger_app/internal/core/domain"
)

// CreateFiscalYearRequest defines the payload for creating a fiscal year.
// Years are created PENDING and must be opened explicitly.
type CreateFiscalYearRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// CreateFiscalPeriodRequest defines the payload for adding a period to a year.
type CreateFiscalPeriodRequest struct {
	FiscalYearID string    `json:"fiscalYearID" binding:"required"`
	PeriodNumber int       `json:"periodNumber" binding:"required,min=1"`
	StartDate    time.Time `json:"startDate" binding:"required"`
	EndDate      time.Time `json:"endDate" binding:"required"`
}

// FiscalYearResponse is the API representation of a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string     `json:"fiscalYearID"`
	Name         string     `json:"name"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Status       string     `json:"status"`
	IsCurrent    bool       `json:"isCurrent"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
}

// FiscalPeriodResponse is the API representation of a fiscal period.
type FiscalPeriodResponse struct {
	FiscalPeriodID string    `json:"fiscalPeriodID"`
	FiscalYearID   string    `json:"fiscalYearID"`
	PeriodNumber   int       `json:"periodNumber"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Status         string    `json:"status"`
}

// ToFiscalYearResponse converts a domain fiscal year to its API representation.
func ToFiscalYearResponse(y *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: y.FiscalYearID,
		Name:         y.Name,
		StartDate:    y.StartDate,
		EndDate:      y.EndDate,
		Status:       string(y.Status),
		IsCurrent:    y.IsCurrent,
		ClosedAt:     y.ClosedAt,
	}
}

// ToFiscalPeriodResponse converts a domain fiscal period to its API representation.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		FiscalPeriodID: p.FiscalPeriodID,
		FiscalYearID:   p.FiscalYearID,
		PeriodNumber:   p.PeriodNumber,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Status:         string(p.Status),
	}
}
