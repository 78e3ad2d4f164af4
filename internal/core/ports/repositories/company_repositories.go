package repositories

import (
	"context"

	"github.com/billsphere/billing_backend/internal/core/domain"
)

// CompanyReader defines read operations for companies and memberships.
type CompanyReader interface {
	// FindCompanyByID retrieves a company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompaniesByUserID retrieves the companies a user is a member of.
	ListCompaniesByUserID(ctx context.Context, userID string) ([]domain.Company, error)

	// FindUserCompanyRole retrieves a user's membership in a company.
	// Returns apperrors.ErrNotFound if the user is not a member.
	FindUserCompanyRole(ctx context.Context, userID, companyID string) (*domain.UserCompany, error)
}

// CompanyWriter defines write operations for companies and memberships.
type CompanyWriter interface {
	// SaveCompany persists a new company and the creator's OWNER membership atomically.
	SaveCompany(ctx context.Context, company domain.Company, creator domain.UserCompany) error

	// UpdateCompany updates a company's mutable fields.
	UpdateCompany(ctx context.Context, company domain.Company) error

	// AddUserToCompany adds a membership.
	AddUserToCompany(ctx context.Context, membership domain.UserCompany) error
}

// CompanyRepositoryFacade combines all company repository interfaces.
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
