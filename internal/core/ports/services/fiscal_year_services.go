package services

import (
	"context"
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/billsphere/billing_backend/internal/dto"
)

// FiscalYearReaderSvc defines read operations for fiscal years
type FiscalYearReaderSvc interface {
	// GetFiscalYearByID retrieves a fiscal year within a company.
	GetFiscalYearByID(ctx context.Context, companyID, fiscalYearID string, requestingUserID string) (*domain.FiscalYear, error)

	// GetFiscalYearForDate retrieves the open fiscal year containing the given date.
	GetFiscalYearForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalYear, error)

	// ListFiscalYears retrieves all fiscal years of a company.
	ListFiscalYears(ctx context.Context, companyID string, requestingUserID string) ([]domain.FiscalYear, error)
}

// FiscalYearWriterSvc defines write operations for fiscal years
type FiscalYearWriterSvc interface {
	// CreateFiscalYear opens a new fiscal year. The range must not overlap an
	// existing year of the company.
	CreateFiscalYear(ctx context.Context, companyID string, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error)

	// CloseFiscalYear marks a fiscal year closed, freezing its entries.
	CloseFiscalYear(ctx context.Context, companyID, fiscalYearID string, requestingUserID string) (*domain.FiscalYear, error)
}

// FiscalYearSvcFacade combines all fiscal year service interfaces
type FiscalYearSvcFacade interface {
	FiscalYearReaderSvc
	FiscalYearWriterSvc
}
