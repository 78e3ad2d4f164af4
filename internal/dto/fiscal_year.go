package dto

import (
	"github.com/billsphere/billing_backend/internal/core/domain"
)

// CreateFiscalYearRequest defines the data needed to open a fiscal year.
// Dates use YYYY-MM-DD.
type CreateFiscalYearRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"startDate" binding:"required,dateonly"`
	EndDate   string `json:"endDate" binding:"required,dateonly"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string `json:"fiscalYearID"`
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	IsClosed     bool   `json:"isClosed"`
}

// ListFiscalYearsResponse wraps the fiscal years of a company.
type ListFiscalYearsResponse struct {
	FiscalYears []FiscalYearResponse `json:"fiscalYears"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to FiscalYearResponse DTO.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: fy.FiscalYearID,
		CompanyID:    fy.CompanyID,
		Name:         fy.Name,
		StartDate:    fy.StartDate.Format("2006-01-02"),
		EndDate:      fy.EndDate.Format("2006-01-02"),
		IsClosed:     fy.IsClosed,
	}
}

// ToListFiscalYearsResponse converts fiscal years to the list DTO.
func ToListFiscalYearsResponse(years []domain.FiscalYear) ListFiscalYearsResponse {
	res := ListFiscalYearsResponse{
		FiscalYears: make([]FiscalYearResponse, len(years)),
	}
	for i, fy := range years {
		res.FiscalYears[i] = ToFiscalYearResponse(&fy)
	}
	return res
}
