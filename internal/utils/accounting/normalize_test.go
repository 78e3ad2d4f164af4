package accounting_test

import (
	"errors"
	"testing"
	"time"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/billsphere/billing_backend/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRecord(id string, source domain.RecordSource, amount string, d int) domain.RawRecord {
	return domain.RawRecord{
		RecordID:     id,
		Source:       source,
		CompanyID:    "comp-1",
		PartyID:      "party-1",
		Date:         day(d),
		Amount:       dec(amount),
		Particulars:  "ref " + id,
		SequenceHint: int64(d),
	}
}

func TestNormalizeRecords_CustomerMapping(t *testing.T) {
	records := []domain.RawRecord{
		rawRecord("s-1", domain.SourceSale, "500", 1),
		rawRecord("p-1", domain.SourcePayment, "200", 2),
	}

	txns, err := accounting.NormalizeRecords(records, domain.RoleCustomer)

	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, domain.KindSale, txns[0].Kind)
	assert.Equal(t, domain.KindPaymentReceived, txns[1].Kind)
	assert.Equal(t, "s-1", txns[0].TransactionID)
	assert.Equal(t, "comp-1", txns[0].CompanyID)
	assert.True(t, txns[0].Amount.Equal(dec("500")))
}

func TestNormalizeRecords_SupplierMapping(t *testing.T) {
	records := []domain.RawRecord{
		rawRecord("b-1", domain.SourcePurchase, "750", 1),
		rawRecord("p-2", domain.SourcePayment, "750", 2),
	}

	txns, err := accounting.NormalizeRecords(records, domain.RoleSupplier)

	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, domain.KindPurchase, txns[0].Kind)
	assert.Equal(t, domain.KindPaymentMade, txns[1].Kind)
}

func TestNormalizeRecords_RejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.RawRecord)
		wantField string
	}{
		{
			name:      "negative amount",
			mutate:    func(r *domain.RawRecord) { r.Amount = dec("-500") },
			wantField: "amount",
		},
		{
			name:      "zero date",
			mutate:    func(r *domain.RawRecord) { r.Date = time.Time{} },
			wantField: "date",
		},
		{
			name:      "missing party reference",
			mutate:    func(r *domain.RawRecord) { r.PartyID = "" },
			wantField: "partyID",
		},
		{
			name:      "purchase record on a customer ledger",
			mutate:    func(r *domain.RawRecord) { r.Source = domain.SourcePurchase },
			wantField: "source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := rawRecord("rec-42", domain.SourceSale, "500", 1)
			tt.mutate(&rec)

			txns, err := accounting.NormalizeRecords([]domain.RawRecord{rec}, domain.RoleCustomer)

			assert.Nil(t, txns, "no partial output on failure")
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			var verr *apperrors.RecordValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "rec-42", verr.RecordID)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestNormalizeRecords_FailsBeforeProducingLaterRecords(t *testing.T) {
	records := []domain.RawRecord{
		rawRecord("ok-1", domain.SourceSale, "100", 1),
		rawRecord("bad-1", domain.SourceSale, "-500", 2),
		rawRecord("ok-2", domain.SourceSale, "300", 3),
	}

	txns, err := accounting.NormalizeRecords(records, domain.RoleCustomer)

	assert.Nil(t, txns)
	var verr *apperrors.RecordValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "bad-1", verr.RecordID)
	assert.Equal(t, "amount", verr.Field)
}

func TestNormalizeRecords_Empty(t *testing.T) {
	txns, err := accounting.NormalizeRecords(nil, domain.RoleCustomer)

	require.NoError(t, err)
	assert.Empty(t, txns)
}
