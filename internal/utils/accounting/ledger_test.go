package accounting_test

import (
	"testing"
	"time"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/billsphere/billing_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.April, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(kind domain.TransactionKind, amount string, d int, seq int64) domain.Transaction {
	return domain.Transaction{
		TransactionID: "txn-" + string(kind),
		CompanyID:     "comp-1",
		PartyID:       "party-1",
		Date:          day(d),
		Kind:          kind,
		Amount:        dec(amount),
		Particulars:   string(kind),
		SequenceHint:  seq,
	}
}

func TestBuildLedger_EmptyTransactions(t *testing.T) {
	opening := domain.Balance{Amount: dec("250"), Type: domain.Debit}

	result, err := accounting.BuildLedger(opening, nil)

	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Equal(t, opening, result.ClosingBalance)
	assert.Equal(t, opening, result.OpeningBalance)
}

func TestBuildLedger_NegativeOpeningBalance(t *testing.T) {
	opening := domain.Balance{Amount: dec("-10"), Type: domain.Debit}

	result, err := accounting.BuildLedger(opening, nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOpeningBalance)
}

func TestBuildLedger_MultiKindFold(t *testing.T) {
	opening := domain.Balance{Amount: decimal.Zero, Type: domain.Debit}
	txns := []domain.Transaction{
		txn(domain.KindSale, "500", 1, 1),
		txn(domain.KindPaymentReceived, "200", 2, 2),
		txn(domain.KindSale, "100", 3, 3),
	}

	result, err := accounting.BuildLedger(opening, txns)

	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	wantRunning := []struct {
		amount string
		typ    domain.BalanceType
	}{
		{"500", domain.Debit},
		{"300", domain.Debit},
		{"400", domain.Debit},
	}
	for i, want := range wantRunning {
		assert.True(t, result.Rows[i].RunningBalance.Equal(dec(want.amount)),
			"row %d running balance: got %s want %s", i, result.Rows[i].RunningBalance, want.amount)
		assert.Equal(t, want.typ, result.Rows[i].RunningBalanceType, "row %d", i)
	}
	assert.True(t, result.ClosingBalance.Amount.Equal(dec("400")))
	assert.Equal(t, domain.Debit, result.ClosingBalance.Type)
}

func TestBuildLedger_SignCrossing(t *testing.T) {
	// An overpayment turns a debit balance into a credit balance; the row must
	// carry the new sign, not an approximation.
	opening := domain.Balance{Amount: dec("100"), Type: domain.Debit}
	txns := []domain.Transaction{txn(domain.KindPaymentReceived, "150", 1, 1)}

	result, err := accounting.BuildLedger(opening, txns)

	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.True(t, row.Credit.Equal(dec("150")))
	assert.True(t, row.Debit.IsZero())
	assert.True(t, row.RunningBalance.Equal(dec("50")))
	assert.Equal(t, domain.Credit, row.RunningBalanceType)
	assert.True(t, result.ClosingBalance.Amount.Equal(dec("50")))
	assert.Equal(t, domain.Credit, result.ClosingBalance.Type)
}

func TestBuildLedger_OneSidePerRow(t *testing.T) {
	opening := domain.ZeroBalance()
	txns := []domain.Transaction{
		txn(domain.KindSale, "80", 1, 1),
		txn(domain.KindPaymentReceived, "30", 2, 2),
		txn(domain.KindSale, "0", 3, 3), // zero-amount entries still emit a row
	}

	result, err := accounting.BuildLedger(opening, txns)

	require.NoError(t, err)
	for i, row := range result.Rows {
		assert.False(t, row.Debit.IsPositive() && row.Credit.IsPositive(),
			"row %d has both debit and credit set", i)
		assert.False(t, row.Debit.IsNegative() || row.Credit.IsNegative(),
			"row %d has a negative side", i)
	}
}

func TestBuildLedger_OrderingStableOnSequenceHint(t *testing.T) {
	opening := domain.ZeroBalance()
	first := txn(domain.KindSale, "10", 5, 1)
	first.Particulars = "entered first"
	second := txn(domain.KindSale, "20", 5, 2)
	second.Particulars = "entered second"

	forward, err := accounting.BuildLedger(opening, []domain.Transaction{first, second})
	require.NoError(t, err)
	swapped, err := accounting.BuildLedger(opening, []domain.Transaction{second, first})
	require.NoError(t, err)

	// Swapping input order never changes output order for same-day entries.
	assert.Equal(t, forward, swapped)
	assert.Equal(t, "entered first", forward.Rows[0].Particulars)
	assert.Equal(t, "entered second", forward.Rows[1].Particulars)
}

func TestBuildLedger_Deterministic(t *testing.T) {
	opening := domain.Balance{Amount: dec("42.50"), Type: domain.Credit}
	txns := []domain.Transaction{
		txn(domain.KindSale, "19.99", 2, 7),
		txn(domain.KindPaymentReceived, "5", 1, 3),
		txn(domain.KindSale, "100", 2, 4),
	}

	a, err := accounting.BuildLedger(opening, txns)
	require.NoError(t, err)
	b, err := accounting.BuildLedger(opening, txns)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestBuildLedger_DoesNotMutateInput(t *testing.T) {
	opening := domain.ZeroBalance()
	txns := []domain.Transaction{
		txn(domain.KindSale, "20", 2, 2),
		txn(domain.KindSale, "10", 1, 1),
	}

	_, err := accounting.BuildLedger(opening, txns)

	require.NoError(t, err)
	assert.Equal(t, day(2), txns[0].Date, "input slice must keep its original order")
	assert.Equal(t, day(1), txns[1].Date)
}

func TestBuildLedger_UnsupportedKind(t *testing.T) {
	opening := domain.ZeroBalance()
	bad := txn(domain.TransactionKind("REFUND"), "10", 1, 1)

	result, err := accounting.BuildLedger(opening, []domain.Transaction{bad})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedKind)
}

func TestBuildLedger_ClosingMatchesSummarize(t *testing.T) {
	// Cross-component invariant: the fold's closing balance and the aggregate-only
	// path must never disagree.
	tests := []struct {
		name    string
		role    domain.PartyRole
		opening domain.Balance
		txns    []domain.Transaction
	}{
		{
			name:    "customer with mixed activity",
			role:    domain.RoleCustomer,
			opening: domain.Balance{Amount: dec("300"), Type: domain.Debit},
			txns: []domain.Transaction{
				txn(domain.KindSale, "1200", 1, 1),
				txn(domain.KindPaymentReceived, "900", 2, 2),
				txn(domain.KindSale, "55.25", 3, 3),
				txn(domain.KindPaymentReceived, "700", 4, 4),
			},
		},
		{
			name:    "customer overpaid",
			role:    domain.RoleCustomer,
			opening: domain.Balance{Amount: dec("50"), Type: domain.Debit},
			txns: []domain.Transaction{
				txn(domain.KindPaymentReceived, "400", 1, 1),
			},
		},
		{
			name:    "supplier side",
			role:    domain.RoleSupplier,
			opening: domain.Balance{Amount: dec("150"), Type: domain.Credit},
			txns: []domain.Transaction{
				txn(domain.KindPurchase, "600", 1, 1),
				txn(domain.KindPaymentMade, "500", 2, 2),
				txn(domain.KindPurchase, "75.75", 3, 3),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, err := accounting.BuildLedger(tt.opening, tt.txns)
			require.NoError(t, err)
			summary, err := accounting.Summarize(tt.opening, tt.txns, tt.role, decimal.Zero)
			require.NoError(t, err)

			// TotalDue is debit-positive for customers and credit-positive for
			// suppliers; re-orient the closing balance the same way.
			closingSigned := ledger.ClosingBalance.Signed()
			if tt.role == domain.RoleSupplier {
				closingSigned = closingSigned.Neg()
			}
			assert.True(t, summary.TotalDue.Equal(closingSigned),
				"totalDue %s != closing %s", summary.TotalDue, closingSigned)
		})
	}
}
