package dto

import (
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest defines the data needed to record a purchase bill.
// Date uses YYYY-MM-DD, parsed in the service.
type CreatePurchaseRequest struct {
	PartyID     string          `json:"partyID" binding:"required"`
	BillNumber  string          `json:"billNumber" binding:"required"`
	Date        string          `json:"date" binding:"required,dateonly"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Particulars string          `json:"particulars"`
}

// PurchaseResponse defines the data returned for a purchase entry.
type PurchaseResponse struct {
	PurchaseID   string          `json:"purchaseID"`
	CompanyID    string          `json:"companyID"`
	PartyID      string          `json:"partyID"`
	FiscalYearID string          `json:"fiscalYearID"`
	BillNumber   string          `json:"billNumber"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Particulars  string          `json:"particulars"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ListPurchasesResponse wraps a paginated list of purchase entries.
type ListPurchasesResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToPurchaseResponse converts a domain.PurchaseEntry to PurchaseResponse DTO.
func ToPurchaseResponse(p *domain.PurchaseEntry) PurchaseResponse {
	return PurchaseResponse{
		PurchaseID:   p.PurchaseID,
		CompanyID:    p.CompanyID,
		PartyID:      p.PartyID,
		FiscalYearID: p.FiscalYearID,
		BillNumber:   p.BillNumber,
		Date:         p.Date.Format("2006-01-02"),
		Amount:       p.Amount,
		Particulars:  p.Particulars,
		CreatedAt:    p.CreatedAt,
		CreatedBy:    p.CreatedBy,
	}
}

// ToListPurchasesResponse converts a page of purchase entries to the list DTO.
func ToListPurchasesResponse(purchases []domain.PurchaseEntry, nextToken *string) ListPurchasesResponse {
	res := ListPurchasesResponse{
		Purchases: make([]PurchaseResponse, len(purchases)),
		NextToken: nextToken,
	}
	for i, p := range purchases {
		res.Purchases[i] = ToPurchaseResponse(&p)
	}
	return res
}
