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

// saleService implements the SaleSvcFacade interface
type saleService struct {
	BaseService
	saleRepo       portsrepo.SaleRepositoryFacade
	partyRepo      portsrepo.PartyReader
	fiscalYearsSvc portssvc.FiscalYearReaderSvc
	ledgerSvc      portssvc.LedgerSvcFacade
	notifier       portssvc.NotificationSvcFacade
}

// SaleServiceOption configures optional dependencies of the sale service.
type SaleServiceOption func(*saleService)

// WithCreditLimitAlerts wires the ledger and notification services so that a
// sale pushing a customer past its credit limit raises a notification.
func WithCreditLimitAlerts(ledgerSvc portssvc.LedgerSvcFacade, notifier portssvc.NotificationSvcFacade) SaleServiceOption {
	return func(s *saleService) {
		s.ledgerSvc = ledgerSvc
		s.notifier = notifier
	}
}

// NewSaleService creates a new sale service with the provided dependencies
func NewSaleService(
	saleRepo portsrepo.SaleRepositoryFacade,
	partyRepo portsrepo.PartyReader,
	fiscalYearsSvc portssvc.FiscalYearReaderSvc,
	authorizer portssvc.CompanyAuthorizerSvc,
	opts ...SaleServiceOption,
) portssvc.SaleSvcFacade {
	s := &saleService{
		BaseService:    BaseService{CompanyAuthorizer: authorizer},
		saleRepo:       saleRepo,
		partyRepo:      partyRepo,
		fiscalYearsSvc: fiscalYearsSvc,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure saleService implements the SaleSvcFacade interface
var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// GetSaleByID retrieves a sale entry within a company
func (s *saleService) GetSaleByID(ctx context.Context, companyID, saleID string, requestingUserID string) (*domain.SaleEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.FindSaleByID(ctx, companyID, saleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find sale by ID", slog.String("sale_id", saleID))
		}
		return nil, err
	}
	return sale, nil
}

// ListSales retrieves a paginated list of a company's sale entries
func (s *saleService) ListSales(ctx context.Context, companyID string, limit int, nextToken *string, requestingUserID string) ([]domain.SaleEntry, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	sales, token, err := s.saleRepo.ListSales(ctx, companyID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales", slog.String("company_id", companyID))
		return nil, nil, err
	}
	return sales, token, nil
}

// CreateSale records a sales invoice against a customer
func (s *saleService) CreateSale(ctx context.Context, companyID string, req dto.CreateSaleRequest, creatorUserID string) (*domain.SaleEntry, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	party, err := s.partyRepo.FindPartyByID(ctx, companyID, req.PartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: party %s not found", apperrors.ErrValidation, req.PartyID)
		}
		return nil, fmt.Errorf("failed to validate party: %w", err)
	}
	if party.Role != domain.RoleCustomer {
		return nil, fmt.Errorf("%w: sales can only be recorded against customers", apperrors.ErrValidation)
	}
	if !party.IsActive {
		return nil, fmt.Errorf("%w: party %s is inactive", apperrors.ErrValidation, req.PartyID)
	}

	fy, err := s.fiscalYearsSvc.GetFiscalYearForDate(ctx, companyID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no open fiscal year covers %s", apperrors.ErrValidation, req.Date)
		}
		return nil, err
	}

	now := time.Now()
	sale := domain.SaleEntry{
		SaleID:        uuid.NewString(),
		CompanyID:     companyID,
		PartyID:       req.PartyID,
		FiscalYearID:  fy.FiscalYearID,
		InvoiceNumber: req.InvoiceNumber,
		Date:          date,
		Amount:        req.Amount,
		Particulars:   req.Particulars,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.saleRepo.SaveSale(ctx, sale)
	if err != nil {
		s.LogError(ctx, err, "Failed to save sale",
			slog.String("company_id", companyID),
			slog.String("party_id", req.PartyID))
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	// A failed alert never fails the sale itself
	if s.ledgerSvc != nil && s.notifier != nil && party.CreditLimitAmount.IsPositive() {
		_, summary, sumErr := s.ledgerSvc.PartySummary(ctx, companyID, req.PartyID, creatorUserID)
		if sumErr != nil {
			s.LogError(ctx, sumErr, "Failed to check credit limit after sale",
				slog.String("party_id", req.PartyID))
		} else if summary.CreditLimitExceeded {
			if notifyErr := s.notifier.NotifyCreditLimit(ctx, companyID, party); notifyErr != nil {
				s.LogError(ctx, notifyErr, "Failed to record credit limit notification",
					slog.String("party_id", req.PartyID))
			}
		}
	}

	s.LogInfo(ctx, "Sale recorded",
		slog.String("sale_id", saved.SaleID),
		slog.String("invoice_number", saved.InvoiceNumber))
	return saved, nil
}

// DeleteSale removes a sale entry unless its fiscal year is closed
func (s *saleService) DeleteSale(ctx context.Context, companyID, saleID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	sale, err := s.saleRepo.FindSaleByID(ctx, companyID, saleID)
	if err != nil {
		return err
	}

	fy, err := s.fiscalYearsSvc.GetFiscalYearByID(ctx, companyID, sale.FiscalYearID, requestingUserID)
	if err != nil {
		return err
	}
	if fy.IsClosed {
		return fmt.Errorf("%w: fiscal year %s is closed", apperrors.ErrValidation, fy.Name)
	}

	if err := s.saleRepo.DeleteSale(ctx, companyID, saleID); err != nil {
		s.LogError(ctx, err, "Failed to delete sale", slog.String("sale_id", saleID))
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	s.LogInfo(ctx, "Sale deleted", slog.String("sale_id", saleID))
	return nil
}
