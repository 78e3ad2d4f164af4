package domain_test

import (
	"testing"
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionKind_Direction(t *testing.T) {
	tests := []struct {
		name   string
		kind   domain.TransactionKind
		want   domain.BalanceType
		wantOK bool
	}{
		{
			name:   "sale moves balance toward debit",
			kind:   domain.KindSale,
			want:   domain.Debit,
			wantOK: true,
		},
		{
			name:   "payment made moves balance toward debit",
			kind:   domain.KindPaymentMade,
			want:   domain.Debit,
			wantOK: true,
		},
		{
			name:   "purchase moves balance toward credit",
			kind:   domain.KindPurchase,
			want:   domain.Credit,
			wantOK: true,
		},
		{
			name:   "payment received moves balance toward credit",
			kind:   domain.KindPaymentReceived,
			want:   domain.Credit,
			wantOK: true,
		},
		{
			name:   "unknown kind has no direction",
			kind:   domain.TransactionKind("REFUND"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.kind.Direction()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBalance_SignedRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		balance domain.Balance
		signed  decimal.Decimal
	}{
		{
			name:    "debit balance is positive",
			balance: domain.Balance{Amount: decimal.NewFromInt(150), Type: domain.Debit},
			signed:  decimal.NewFromInt(150),
		},
		{
			name:    "credit balance is negative",
			balance: domain.Balance{Amount: decimal.NewFromInt(80), Type: domain.Credit},
			signed:  decimal.NewFromInt(-80),
		},
		{
			name:    "zero balance is debit by convention",
			balance: domain.ZeroBalance(),
			signed:  decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.balance.Signed().Equal(tt.signed))

			back := domain.BalanceFromSigned(tt.signed)
			assert.True(t, back.Amount.Equal(tt.balance.Amount))
			assert.Equal(t, tt.balance.Type, back.Type)
		})
	}
}

func TestParty_OpeningBalanceValue(t *testing.T) {
	party := domain.Party{
		OpeningBalance:     decimal.NewFromInt(100),
		OpeningBalanceType: domain.Credit,
	}
	got := party.OpeningBalanceValue()
	assert.Equal(t, domain.Credit, got.Type)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(100)))

	// An unset direction defaults to debit so statements never see an empty type.
	untyped := domain.Party{OpeningBalance: decimal.NewFromInt(50)}
	assert.Equal(t, domain.Debit, untyped.OpeningBalanceValue().Type)
}

func TestSaleEntry_ToRawRecordParticularsFallback(t *testing.T) {
	sale := domain.SaleEntry{
		SaleID:        "sale-1",
		CompanyID:     "company-1",
		PartyID:       "party-1",
		InvoiceNumber: "INV-042",
		Date:          time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(200),
		SequenceNo:    3,
	}

	rec := sale.ToRawRecord()
	assert.Equal(t, domain.SourceSale, rec.Source)
	assert.Equal(t, "Sale invoice INV-042", rec.Particulars)
	assert.Equal(t, int64(3), rec.SequenceHint)

	sale.Particulars = "April consignment"
	assert.Equal(t, "April consignment", sale.ToRawRecord().Particulars)
}

func TestPayment_ToRawRecordParticularsFallback(t *testing.T) {
	payment := domain.Payment{
		PaymentID: "pay-1",
		CompanyID: "company-1",
		PartyID:   "party-1",
		Direction: domain.PaymentIn,
		Date:      time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(120),
		Mode:      "cheque",
	}

	rec := payment.ToRawRecord()
	assert.Equal(t, domain.SourcePayment, rec.Source)
	assert.Equal(t, "Payment (cheque)", rec.Particulars)

	payment.Remarks = "Cheque no 1187"
	assert.Equal(t, "Cheque no 1187", payment.ToRawRecord().Particulars)
}

func TestUserCompanyRole_Covers(t *testing.T) {
	assert.True(t, domain.RoleOwner.Covers(domain.RoleAdmin))
	assert.True(t, domain.RoleAdmin.Covers(domain.RoleReadOnly))
	assert.True(t, domain.RoleMember.Covers(domain.RoleMember))
	assert.False(t, domain.RoleReadOnly.Covers(domain.RoleMember))
	assert.False(t, domain.UserCompanyRole("GUEST").Covers(domain.RoleReadOnly))
}

func TestFiscalYear_Contains(t *testing.T) {
	fy := domain.FiscalYear{
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, fy.Contains(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, fy.Contains(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, fy.Contains(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, fy.Contains(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))
}
