package accounting

import (
	"fmt"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Summarize derives per-party totals and the credit-limit flag without building the
// full row sequence. Dashboards and due-list aggregates that scan many parties use
// this path instead of paying for BuildLedger.
//
// TotalDue is oriented in the party's "owing" direction: debit-positive for a
// customer, credit-positive for a supplier. For identical inputs it always equals
// the closing balance BuildLedger would produce, re-expressed in that orientation.
func Summarize(opening domain.Balance, txns []domain.Transaction, role domain.PartyRole, creditLimit decimal.Decimal) (*domain.PartySummary, error) {
	if opening.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidOpeningBalance, opening.Amount.String())
	}

	summary := &domain.PartySummary{
		TotalSales:     decimal.Zero,
		TotalPurchases: decimal.Zero,
		TotalPayments:  decimal.Zero,
	}

	for _, txn := range txns {
		switch txn.Kind {
		case domain.KindSale:
			summary.TotalSales = summary.TotalSales.Add(txn.Amount)
		case domain.KindPurchase:
			summary.TotalPurchases = summary.TotalPurchases.Add(txn.Amount)
		case domain.KindPaymentReceived, domain.KindPaymentMade:
			summary.TotalPayments = summary.TotalPayments.Add(txn.Amount)
		default:
			return nil, fmt.Errorf("%w: %q on transaction %s", apperrors.ErrUnsupportedKind, txn.Kind, txn.TransactionID)
		}
	}

	// Orient the carried-in balance: debit-positive for customers, credit-positive
	// for suppliers, so the due formula reads the same on both sides.
	switch role {
	case domain.RoleCustomer:
		summary.PrevClosingBalance = opening.Signed()
		summary.TotalDue = summary.PrevClosingBalance.Add(summary.TotalSales).Sub(summary.TotalPayments)
	case domain.RoleSupplier:
		summary.PrevClosingBalance = opening.Signed().Neg()
		summary.TotalDue = summary.PrevClosingBalance.Add(summary.TotalPurchases).Sub(summary.TotalPayments)
	default:
		return nil, fmt.Errorf("%w: unknown party role %q", apperrors.ErrValidation, role)
	}

	// A party with no configured limit can never be exceeded.
	summary.CreditLimitExceeded = creditLimit.IsPositive() && summary.TotalDue.GreaterThan(creditLimit)

	return summary, nil
}
