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

// partyService implements the PartySvcFacade interface
type partyService struct {
	BaseService
	partyRepo portsrepo.PartyRepositoryFacade
}

// NewPartyService creates a new party service with the provided dependencies
func NewPartyService(
	partyRepo portsrepo.PartyRepositoryFacade,
	authorizer portssvc.CompanyAuthorizerSvc,
) portssvc.PartySvcFacade {
	return &partyService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		partyRepo:   partyRepo,
	}
}

// Ensure partyService implements the PartySvcFacade interface
var _ portssvc.PartySvcFacade = (*partyService)(nil)

// GetPartyByID retrieves a party within a company
func (s *partyService) GetPartyByID(ctx context.Context, companyID, partyID string, requestingUserID string) (*domain.Party, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	party, err := s.partyRepo.FindPartyByID(ctx, companyID, partyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find party by ID",
				slog.String("company_id", companyID),
				slog.String("party_id", partyID))
		}
		return nil, err
	}
	return party, nil
}

// ListParties retrieves a paginated list of a company's parties
func (s *partyService) ListParties(ctx context.Context, companyID string, role *domain.PartyRole, limit int, nextToken *string, requestingUserID string) ([]domain.Party, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	parties, token, err := s.partyRepo.ListParties(ctx, companyID, role, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list parties",
			slog.String("company_id", companyID))
		return nil, nil, err
	}
	return parties, token, nil
}

// CreateParty persists a new customer or supplier
func (s *partyService) CreateParty(ctx context.Context, companyID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must be non-negative, direction is carried by its type", apperrors.ErrInvalidOpeningBalance)
	}
	if req.CreditLimitAmount.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit must be non-negative", apperrors.ErrValidation)
	}

	openingType := domain.BalanceType(req.OpeningBalanceType)
	if openingType == "" {
		openingType = domain.Debit
	}

	now := time.Now()
	party := domain.Party{
		PartyID:                uuid.NewString(),
		CompanyID:              companyID,
		Role:                   req.Role,
		Name:                   req.Name,
		PAN:                    req.PAN,
		Address:                req.Address,
		Phone:                  req.Phone,
		Email:                  req.Email,
		OpeningBalance:         req.OpeningBalance,
		OpeningBalanceType:     openingType,
		CreditLimitAmount:      req.CreditLimitAmount,
		CreditTimePeriodInDays: req.CreditTimePeriodInDays,
		IsActive:               true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		s.LogError(ctx, err, "Failed to save party",
			slog.String("company_id", companyID),
			slog.String("party_name", req.Name))
		return nil, fmt.Errorf("failed to create party: %w", err)
	}

	s.LogInfo(ctx, "Party created",
		slog.String("party_id", party.PartyID),
		slog.String("role", string(party.Role)))
	return &party, nil
}

// UpdateParty updates a party's mutable fields. The role and opening balance
// stay fixed; changing either would silently rewrite every statement already
// issued for the party.
func (s *partyService) UpdateParty(ctx context.Context, companyID, partyID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Party, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	party, err := s.partyRepo.FindPartyByID(ctx, companyID, partyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		party.Name = *req.Name
	}
	if req.PAN != nil {
		party.PAN = *req.PAN
	}
	if req.Address != nil {
		party.Address = *req.Address
	}
	if req.Phone != nil {
		party.Phone = *req.Phone
	}
	if req.Email != nil {
		party.Email = *req.Email
	}
	if req.CreditLimitAmount != nil {
		if req.CreditLimitAmount.IsNegative() {
			return nil, fmt.Errorf("%w: credit limit must be non-negative", apperrors.ErrValidation)
		}
		party.CreditLimitAmount = *req.CreditLimitAmount
	}
	if req.CreditTimePeriodInDays != nil {
		party.CreditTimePeriodInDays = *req.CreditTimePeriodInDays
	}
	party.LastUpdatedAt = time.Now()
	party.LastUpdatedBy = requestingUserID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		s.LogError(ctx, err, "Failed to update party",
			slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to update party: %w", err)
	}

	return party, nil
}

// DeactivateParty soft-deletes a party
func (s *partyService) DeactivateParty(ctx context.Context, companyID, partyID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.partyRepo.DeactivateParty(ctx, companyID, partyID, requestingUserID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate party",
				slog.String("party_id", partyID))
		}
		return err
	}

	s.LogInfo(ctx, "Party deactivated", slog.String("party_id", partyID))
	return nil
}
