package dto

import (
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest defines the data needed to record a sales invoice.
// Date uses YYYY-MM-DD; parsing happens in the service so a bad date surfaces as a
// validation error, not a silent zero value.
type CreateSaleRequest struct {
	PartyID       string          `json:"partyID" binding:"required"`
	InvoiceNumber string          `json:"invoiceNumber" binding:"required"`
	Date          string          `json:"date" binding:"required,dateonly"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Particulars   string          `json:"particulars"`
}

// SaleResponse defines the data returned for a sale entry.
type SaleResponse struct {
	SaleID        string          `json:"saleID"`
	CompanyID     string          `json:"companyID"`
	PartyID       string          `json:"partyID"`
	FiscalYearID  string          `json:"fiscalYearID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Particulars   string          `json:"particulars"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ListSalesResponse wraps a paginated list of sale entries.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToSaleResponse converts a domain.SaleEntry to SaleResponse DTO.
func ToSaleResponse(s *domain.SaleEntry) SaleResponse {
	return SaleResponse{
		SaleID:        s.SaleID,
		CompanyID:     s.CompanyID,
		PartyID:       s.PartyID,
		FiscalYearID:  s.FiscalYearID,
		InvoiceNumber: s.InvoiceNumber,
		Date:          s.Date.Format("2006-01-02"),
		Amount:        s.Amount,
		Particulars:   s.Particulars,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
	}
}

// ToListSalesResponse converts a page of sale entries to the list DTO.
func ToListSalesResponse(sales []domain.SaleEntry, nextToken *string) ListSalesResponse {
	res := ListSalesResponse{
		Sales:     make([]SaleResponse, len(sales)),
		NextToken: nextToken,
	}
	for i, s := range sales {
		res.Sales[i] = ToSaleResponse(&s)
	}
	return res
}
