package dto

import (
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to record a payment.
// Direction IN is money collected from a customer, OUT is money paid to a supplier.
type CreatePaymentRequest struct {
	PartyID   string          `json:"partyID" binding:"required"`
	Direction string          `json:"direction" binding:"required,oneof=IN OUT"`
	Date      string          `json:"date" binding:"required,dateonly"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Mode      string          `json:"mode" binding:"required"`
	Remarks   string          `json:"remarks"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID    string          `json:"paymentID"`
	CompanyID    string          `json:"companyID"`
	PartyID      string          `json:"partyID"`
	FiscalYearID string          `json:"fiscalYearID"`
	Direction    string          `json:"direction"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Mode         string          `json:"mode"`
	Remarks      string          `json:"remarks"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ListPaymentsResponse wraps a paginated list of payments.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:    p.PaymentID,
		CompanyID:    p.CompanyID,
		PartyID:      p.PartyID,
		FiscalYearID: p.FiscalYearID,
		Direction:    string(p.Direction),
		Date:         p.Date.Format("2006-01-02"),
		Amount:       p.Amount,
		Mode:         p.Mode,
		Remarks:      p.Remarks,
		CreatedAt:    p.CreatedAt,
		CreatedBy:    p.CreatedBy,
	}
}

// ToListPaymentsResponse converts a page of payments to the list DTO.
func ToListPaymentsResponse(payments []domain.Payment, nextToken *string) ListPaymentsResponse {
	res := ListPaymentsResponse{
		Payments:  make([]PaymentResponse, len(payments)),
		NextToken: nextToken,
	}
	for i, p := range payments {
		res.Payments[i] = ToPaymentResponse(&p)
	}
	return res
}
