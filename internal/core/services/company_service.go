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

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	userRepo    portsrepo.UserReader
}

// NewCompanyService creates a new company service with the provided dependencies
func NewCompanyService(
	companyRepo portsrepo.CompanyRepositoryFacade,
	userRepo portsrepo.UserReader,
) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
	}
}

// Ensure companyService implements the CompanySvcFacade interface
var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// GetCompanyByID retrieves a company after verifying membership
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string, requestingUserID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company by ID",
				slog.String("company_id", companyID))
		}
		return nil, err
	}
	return company, nil
}

// ListUserCompanies retrieves all companies the user is a member of
func (s *companyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies for user",
			slog.String("user_id", userID))
		return nil, err
	}
	return companies, nil
}

// CreateCompany creates a new company and makes the creator the OWNER.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	now := time.Now()
	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      req.Name,
		PAN:       req.PAN,
		Address:   req.Address,
		Phone:     req.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	creator := domain.UserCompany{
		UserID:    creatorUserID,
		CompanyID: company.CompanyID,
		Role:      domain.RoleOwner,
		JoinedAt:  now,
	}

	// Company and OWNER membership are saved in one transaction so a company can
	// never exist without an owner.
	if err := s.companyRepo.SaveCompany(ctx, company, creator); err != nil {
		s.LogError(ctx, err, "Failed to save company",
			slog.String("company_name", req.Name))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.LogInfo(ctx, "Company created",
		slog.String("company_id", company.CompanyID),
		slog.String("creator_user_id", creatorUserID))
	return &company, nil
}

// UpdateCompany updates a company's mutable fields
func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.PAN != nil {
		company.PAN = *req.PAN
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	company.LastUpdatedAt = time.Now()
	company.LastUpdatedBy = requestingUserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company",
			slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	return company, nil
}

// AddUserToCompany adds a user to a company with a specific role
func (s *companyService) AddUserToCompany(ctx context.Context, addingUserID, targetUserID, companyID string, role domain.UserCompanyRole) error {
	if err := s.AuthorizeUserAction(ctx, addingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	// Validate the target user exists before granting membership
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: target user %s not found", apperrors.ErrValidation, targetUserID)
		}
		return fmt.Errorf("failed to validate target user: %w", err)
	}

	membership := domain.UserCompany{
		UserID:    targetUserID,
		CompanyID: companyID,
		Role:      role,
		JoinedAt:  time.Now(),
	}

	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to company",
			slog.String("target_user_id", targetUserID),
			slog.String("company_id", companyID))
		return fmt.Errorf("failed to add user to company: %w", err)
	}

	s.LogInfo(ctx, "User added to company",
		slog.String("target_user_id", targetUserID),
		slog.String("company_id", companyID),
		slog.String("role", string(role)))
	return nil
}

// AuthorizeUserAction checks if a user has the required role in a company.
// Returns ErrForbidden if the user is a member with an insufficient role, and
// ErrNotFound if the user is not a member at all, so non-members cannot learn
// whether a company exists.
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	membership, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to check company membership",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return fmt.Errorf("failed to verify company membership: %w", err)
	}

	if !membership.Role.Covers(requiredRole) {
		return fmt.Errorf("%w: role %s does not permit this action", apperrors.ErrForbidden, membership.Role)
	}

	return nil
}
