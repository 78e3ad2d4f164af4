package repositories

import (
	"context"
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal years.
type FiscalYearReader interface {
	// FindFiscalYearByID retrieves a fiscal year scoped to a company.
	FindFiscalYearByID(ctx context.Context, companyID, fiscalYearID string) (*domain.FiscalYear, error)

	// FindFiscalYearForDate retrieves the open fiscal year containing the given date.
	FindFiscalYearForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalYear, error)

	// ListFiscalYears retrieves all fiscal years of a company, newest first.
	ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error)
}

// FiscalYearWriter defines write operations for fiscal years.
type FiscalYearWriter interface {
	// SaveFiscalYear persists a new fiscal year.
	SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error

	// UpdateFiscalYear updates an existing fiscal year (rename, close).
	UpdateFiscalYear(ctx context.Context, fy domain.FiscalYear) error
}

// FiscalYearRepositoryFacade combines all fiscal year repository interfaces.
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
	FiscalYearWriter
}
