package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	portsrepo "github.com/billsphere/billing_backend/internal/core/ports/repositories"
	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/dto"
	"github.com/google/uuid"
)

// fiscalYearService implements the FiscalYearSvcFacade interface
type fiscalYearService struct {
	BaseService
	fiscalYearRepo portsrepo.FiscalYearRepositoryFacade
}

// NewFiscalYearService creates a new fiscal year service with the provided dependencies
func NewFiscalYearService(
	fiscalYearRepo portsrepo.FiscalYearRepositoryFacade,
	authorizer portssvc.CompanyAuthorizerSvc,
) portssvc.FiscalYearSvcFacade {
	return &fiscalYearService{
		BaseService:    BaseService{CompanyAuthorizer: authorizer},
		fiscalYearRepo: fiscalYearRepo,
	}
}

// Ensure fiscalYearService implements the FiscalYearSvcFacade interface
var _ portssvc.FiscalYearSvcFacade = (*fiscalYearService)(nil)

// GetFiscalYearByID retrieves a fiscal year within a company
func (s *fiscalYearService) GetFiscalYearByID(ctx context.Context, companyID, fiscalYearID string, requestingUserID string) (*domain.FiscalYear, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, companyID, fiscalYearID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fiscal year", slog.String("fiscal_year_id", fiscalYearID))
		}
		return nil, err
	}
	return fy, nil
}

// GetFiscalYearForDate retrieves the open fiscal year containing the given date.
// Internal callers use this to stamp entries; no membership check here since the
// calling service has already authorized the user.
func (s *fiscalYearService) GetFiscalYearForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalYear, error) {
	fy, err := s.fiscalYearRepo.FindFiscalYearForDate(ctx, companyID, date)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fiscal year for date",
				slog.String("company_id", companyID),
				slog.Time("date", date))
		}
		return nil, err
	}
	if fy.IsClosed {
		return nil, fmt.Errorf("%w: fiscal year %s is closed", apperrors.ErrValidation, fy.Name)
	}
	return fy, nil
}

// ListFiscalYears retrieves all fiscal years of a company
func (s *fiscalYearService) ListFiscalYears(ctx context.Context, companyID string, requestingUserID string) ([]domain.FiscalYear, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	years, err := s.fiscalYearRepo.ListFiscalYears(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years", slog.String("company_id", companyID))
		return nil, err
	}
	return years, nil
}

// CreateFiscalYear opens a new fiscal year after checking for overlap
func (s *fiscalYearService) CreateFiscalYear(ctx context.Context, companyID string, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date format, expected YYYY-MM-DD", apperrors.ErrValidation)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date format, expected YYYY-MM-DD", apperrors.ErrValidation)
	}
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", apperrors.ErrValidation)
	}

	existing, err := s.fiscalYearRepo.ListFiscalYears(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check fiscal year overlap", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to check fiscal year overlap: %w", err)
	}
	for _, fy := range existing {
		if !startDate.After(fy.EndDate) && !endDate.Before(fy.StartDate) {
			return nil, fmt.Errorf("%w: range overlaps fiscal year %s", apperrors.ErrValidation, fy.Name)
		}
	}

	fy := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		CompanyID:    companyID,
		Name:         req.Name,
		StartDate:    startDate,
		EndDate:      endDate,
	}

	if err := s.fiscalYearRepo.SaveFiscalYear(ctx, fy); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal year", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create fiscal year: %w", err)
	}

	s.LogInfo(ctx, "Fiscal year created",
		slog.String("fiscal_year_id", fy.FiscalYearID),
		slog.String("name", fy.Name))
	return &fy, nil
}

// CloseFiscalYear marks a fiscal year closed, freezing its entries
func (s *fiscalYearService) CloseFiscalYear(ctx context.Context, companyID, fiscalYearID string, requestingUserID string) (*domain.FiscalYear, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleOwner); err != nil {
		return nil, err
	}

	fy, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, companyID, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if fy.IsClosed {
		return nil, fmt.Errorf("%w: fiscal year %s is already closed", apperrors.ErrValidation, fy.Name)
	}

	fy.IsClosed = true
	if err := s.fiscalYearRepo.UpdateFiscalYear(ctx, *fy); err != nil {
		s.LogError(ctx, err, "Failed to close fiscal year", slog.String("fiscal_year_id", fiscalYearID))
		return nil, fmt.Errorf("failed to close fiscal year: %w", err)
	}

	s.LogInfo(ctx, "Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
	return fy, nil
}
