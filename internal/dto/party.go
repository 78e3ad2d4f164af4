package dto

import (
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest defines the data needed to create a customer or supplier.
type CreatePartyRequest struct {
	Role    domain.PartyRole `json:"role" binding:"required,oneof=CUSTOMER SUPPLIER"`
	Name    string           `json:"name" binding:"required"`
	PAN     string           `json:"pan"`
	Address string           `json:"address"`
	Phone   string           `json:"phone"`
	Email   string           `json:"email" binding:"omitempty,email"`

	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceType string          `json:"openingBalanceType" binding:"omitempty,oneof=DEBIT CREDIT"`

	CreditLimitAmount      decimal.Decimal `json:"creditLimitAmount"`
	CreditTimePeriodInDays int             `json:"creditTimePeriodInDays"`
}

// UpdatePartyRequest defines the data allowed for updating a party.
// Pointers distinguish zero-value updates from fields not provided.
type UpdatePartyRequest struct {
	Name                   *string          `json:"name"`
	PAN                    *string          `json:"pan"`
	Address                *string          `json:"address"`
	Phone                  *string          `json:"phone"`
	Email                  *string          `json:"email"`
	CreditLimitAmount      *decimal.Decimal `json:"creditLimitAmount"`
	CreditTimePeriodInDays *int             `json:"creditTimePeriodInDays"`
}

// PartyResponse defines the data returned for a party.
type PartyResponse struct {
	PartyID                string          `json:"partyID"`
	CompanyID              string          `json:"companyID"`
	Role                   string          `json:"role"`
	Name                   string          `json:"name"`
	PAN                    string          `json:"pan"`
	Address                string          `json:"address"`
	Phone                  string          `json:"phone"`
	Email                  string          `json:"email"`
	OpeningBalance         decimal.Decimal `json:"openingBalance"`
	OpeningBalanceType     string          `json:"openingBalanceType"`
	CreditLimitAmount      decimal.Decimal `json:"creditLimitAmount"`
	CreditTimePeriodInDays int             `json:"creditTimePeriodInDays"`
	IsActive               bool            `json:"isActive"`
	CreatedAt              time.Time       `json:"createdAt"`
}

// ListPartiesResponse wraps a paginated list of parties.
type ListPartiesResponse struct {
	Parties   []PartyResponse `json:"parties"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToPartyResponse converts a domain.Party to PartyResponse DTO.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:                p.PartyID,
		CompanyID:              p.CompanyID,
		Role:                   string(p.Role),
		Name:                   p.Name,
		PAN:                    p.PAN,
		Address:                p.Address,
		Phone:                  p.Phone,
		Email:                  p.Email,
		OpeningBalance:         p.OpeningBalance,
		OpeningBalanceType:     string(p.OpeningBalanceType),
		CreditLimitAmount:      p.CreditLimitAmount,
		CreditTimePeriodInDays: p.CreditTimePeriodInDays,
		IsActive:               p.IsActive,
		CreatedAt:              p.CreatedAt,
	}
}

// ToListPartiesResponse converts a page of parties to the list DTO.
func ToListPartiesResponse(parties []domain.Party, nextToken *string) ListPartiesResponse {
	res := ListPartiesResponse{
		Parties:   make([]PartyResponse, len(parties)),
		NextToken: nextToken,
	}
	for i, p := range parties {
		res.Parties[i] = ToPartyResponse(&p)
	}
	return res
}
