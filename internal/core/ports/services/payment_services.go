package services

import (
	"context"

	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/billsphere/billing_backend/internal/dto"
)

// PaymentReaderSvc defines read operations for payments
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a payment within a company.
	GetPaymentByID(ctx context.Context, companyID, paymentID string, requestingUserID string) (*domain.Payment, error)

	// ListPayments retrieves a paginated list of a company's payments.
	ListPayments(ctx context.Context, companyID string, limit int, nextToken *string, requestingUserID string) ([]domain.Payment, *string, error)
}

// PaymentWriterSvc defines write operations for payments
type PaymentWriterSvc interface {
	// CreatePayment records a payment received from a customer or made to a supplier.
	// The direction must match the party's role.
	CreatePayment(ctx context.Context, companyID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error)

	// DeletePayment removes a payment.
	DeletePayment(ctx context.Context, companyID, paymentID string, requestingUserID string) error
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
