package dto

import (
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to create a company. The creating
// user becomes the company OWNER.
type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	PAN     string `json:"pan"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UpdateCompanyRequest defines the data allowed for updating a company.
type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	PAN     *string `json:"pan"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// AddUserToCompanyRequest grants a user a role in a company.
type AddUserToCompanyRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=OWNER ADMIN MEMBER READ_ONLY"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID string    `json:"companyID"`
	Name      string    `json:"name"`
	PAN       string    `json:"pan"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListCompaniesResponse wraps the companies visible to a user.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID: c.CompanyID,
		Name:      c.Name,
		PAN:       c.PAN,
		Address:   c.Address,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

// ToListCompaniesResponse converts companies to the list DTO.
func ToListCompaniesResponse(companies []domain.Company) ListCompaniesResponse {
	res := ListCompaniesResponse{
		Companies: make([]CompanyResponse, len(companies)),
	}
	for i, c := range companies {
		res.Companies[i] = ToCompanyResponse(&c)
	}
	return res
}
