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

// purchaseService implements the PurchaseSvcFacade interface
type purchaseService struct {
	BaseService
	purchaseRepo   portsrepo.PurchaseRepositoryFacade
	partyRepo      portsrepo.PartyReader
	fiscalYearsSvc portssvc.FiscalYearReaderSvc
}

// NewPurchaseService creates a new purchase service with the provided dependencies
func NewPurchaseService(
	purchaseRepo portsrepo.PurchaseRepositoryFacade,
	partyRepo portsrepo.PartyReader,
	fiscalYearsSvc portssvc.FiscalYearReaderSvc,
	authorizer portssvc.CompanyAuthorizerSvc,
) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		BaseService:    BaseService{CompanyAuthorizer: authorizer},
		purchaseRepo:   purchaseRepo,
		partyRepo:      partyRepo,
		fiscalYearsSvc: fiscalYearsSvc,
	}
}

// Ensure purchaseService implements the PurchaseSvcFacade interface
var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// GetPurchaseByID retrieves a purchase entry within a company
func (s *purchaseService) GetPurchaseByID(ctx context.Context, companyID, purchaseID string, requestingUserID string) (*domain.PurchaseEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, companyID, purchaseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find purchase by ID", slog.String("purchase_id", purchaseID))
		}
		return nil, err
	}
	return purchase, nil
}

// ListPurchases retrieves a paginated list of a company's purchase entries
func (s *purchaseService) ListPurchases(ctx context.Context, companyID string, limit int, nextToken *string, requestingUserID string) ([]domain.PurchaseEntry, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	purchases, token, err := s.purchaseRepo.ListPurchases(ctx, companyID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchases", slog.String("company_id", companyID))
		return nil, nil, err
	}
	return purchases, token, nil
}

// CreatePurchase records a purchase bill against a supplier
func (s *purchaseService) CreatePurchase(ctx context.Context, companyID string, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.PurchaseEntry, error) {
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
	if party.Role != domain.RoleSupplier {
		return nil, fmt.Errorf("%w: purchases can only be recorded against suppliers", apperrors.ErrValidation)
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
	purchase := domain.PurchaseEntry{
		PurchaseID:   uuid.NewString(),
		CompanyID:    companyID,
		PartyID:      req.PartyID,
		FiscalYearID: fy.FiscalYearID,
		BillNumber:   req.BillNumber,
		Date:         date,
		Amount:       req.Amount,
		Particulars:  req.Particulars,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.purchaseRepo.SavePurchase(ctx, purchase)
	if err != nil {
		s.LogError(ctx, err, "Failed to save purchase",
			slog.String("company_id", companyID),
			slog.String("party_id", req.PartyID))
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	s.LogInfo(ctx, "Purchase recorded",
		slog.String("purchase_id", saved.PurchaseID),
		slog.String("bill_number", saved.BillNumber))
	return saved, nil
}

// DeletePurchase removes a purchase entry unless its fiscal year is closed
func (s *purchaseService) DeletePurchase(ctx context.Context, companyID, purchaseID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, companyID, purchaseID)
	if err != nil {
		return err
	}

	fy, err := s.fiscalYearsSvc.GetFiscalYearByID(ctx, companyID, purchase.FiscalYearID, requestingUserID)
	if err != nil {
		return err
	}
	if fy.IsClosed {
		return fmt.Errorf("%w: fiscal year %s is closed", apperrors.ErrValidation, fy.Name)
	}

	if err := s.purchaseRepo.DeletePurchase(ctx, companyID, purchaseID); err != nil {
		s.LogError(ctx, err, "Failed to delete purchase", slog.String("purchase_id", purchaseID))
		return fmt.Errorf("failed to delete purchase: %w", err)
	}

	s.LogInfo(ctx, "Purchase deleted", slog.String("purchase_id", purchaseID))
	return nil
}
