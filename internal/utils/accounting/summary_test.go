package accounting_test

import (
	"testing"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/billsphere/billing_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_CustomerTotals(t *testing.T) {
	opening := domain.ZeroBalance()
	txns := []domain.Transaction{
		txn(domain.KindSale, "1200", 1, 1),
		txn(domain.KindPaymentReceived, "100", 2, 2),
	}

	summary, err := accounting.Summarize(opening, txns, domain.RoleCustomer, decimal.Zero)

	require.NoError(t, err)
	assert.True(t, summary.TotalSales.Equal(dec("1200")))
	assert.True(t, summary.TotalPayments.Equal(dec("100")))
	assert.True(t, summary.PrevClosingBalance.IsZero())
	assert.True(t, summary.TotalDue.Equal(dec("1100")))
}

func TestSummarize_CreditLimitFlag(t *testing.T) {
	opening := domain.ZeroBalance()
	txns := []domain.Transaction{
		txn(domain.KindSale, "1200", 1, 1),
		txn(domain.KindPaymentReceived, "100", 2, 2),
	}

	tests := []struct {
		name        string
		creditLimit string
		want        bool
	}{
		{"limit below due", "1000", true},
		{"limit equal to due is not exceeded", "1100", false},
		{"limit above due", "2000", false},
		{"no limit configured", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := accounting.Summarize(opening, txns, domain.RoleCustomer, dec(tt.creditLimit))
			require.NoError(t, err)
			assert.Equal(t, tt.want, summary.CreditLimitExceeded)
		})
	}
}

func TestSummarize_NegativeDueRoundTrips(t *testing.T) {
	// An overpayment is a negative due, never clamped to zero.
	opening := domain.Balance{Amount: dec("100"), Type: domain.Debit}
	txns := []domain.Transaction{
		txn(domain.KindPaymentReceived, "400", 1, 1),
	}

	summary, err := accounting.Summarize(opening, txns, domain.RoleCustomer, dec("1000"))

	require.NoError(t, err)
	assert.True(t, summary.TotalDue.Equal(dec("-300")))
	assert.False(t, summary.CreditLimitExceeded)
}

func TestSummarize_SupplierTotals(t *testing.T) {
	opening := domain.Balance{Amount: dec("200"), Type: domain.Credit}
	txns := []domain.Transaction{
		txn(domain.KindPurchase, "800", 1, 1),
		txn(domain.KindPaymentMade, "300", 2, 2),
	}

	summary, err := accounting.Summarize(opening, txns, domain.RoleSupplier, decimal.Zero)

	require.NoError(t, err)
	assert.True(t, summary.TotalPurchases.Equal(dec("800")))
	assert.True(t, summary.TotalPayments.Equal(dec("300")))
	// Credit-positive orientation on the supplier side.
	assert.True(t, summary.PrevClosingBalance.Equal(dec("200")))
	assert.True(t, summary.TotalDue.Equal(dec("700")))
}

func TestSummarize_NegativeOpeningBalance(t *testing.T) {
	opening := domain.Balance{Amount: dec("-1"), Type: domain.Credit}

	summary, err := accounting.Summarize(opening, nil, domain.RoleCustomer, decimal.Zero)

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOpeningBalance)
}

func TestSummarize_UnknownRole(t *testing.T) {
	txns := []domain.Transaction{
		txn(domain.KindSale, "100", 1, 1),
	}

	summary, err := accounting.Summarize(domain.ZeroBalance(), txns, domain.PartyRole("VENDOR"), decimal.Zero)

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSummarize_UnsupportedKind(t *testing.T) {
	bad := txn(domain.TransactionKind("ADJUSTMENT"), "10", 1, 1)

	summary, err := accounting.Summarize(domain.ZeroBalance(), []domain.Transaction{bad}, domain.RoleCustomer, decimal.Zero)

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedKind)
}
