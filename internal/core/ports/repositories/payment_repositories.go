package repositories

import (
	"context"
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
)

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment scoped to a company.
	FindPaymentByID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error)

	// ListPaymentsByParty retrieves a party's payments with date in [from, to).
	// Zero bounds mean unbounded on that side.
	ListPaymentsByParty(ctx context.Context, companyID, partyID string, from, to time.Time) ([]domain.Payment, error)

	// ListPayments retrieves a paginated list of a company's payments, newest first.
	ListPayments(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Payment, *string, error)
}

// PaymentWriter defines write operations for payments.
type PaymentWriter interface {
	// SavePayment persists a new payment, assigning the next sequence number.
	SavePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error)

	// DeletePayment removes a payment.
	DeletePayment(ctx context.Context, companyID, paymentID string) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
