package accounting

import (
	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
)

// NormalizeRecords converts heterogeneous source records (sales, purchases,
// payments) into uniform transactions for one party role. It is a pure function:
// it either returns a transaction per input record or fails with a
// RecordValidationError naming the offending record and field. No partial output is
// produced; whether to skip a bad record and retry is the caller's policy.
func NormalizeRecords(records []domain.RawRecord, role domain.PartyRole) ([]domain.Transaction, error) {
	txns := make([]domain.Transaction, 0, len(records))
	for _, rec := range records {
		kind, err := kindForRecord(rec, role)
		if err != nil {
			return nil, err
		}
		if rec.Date.IsZero() {
			return nil, apperrors.NewRecordValidationError(rec.RecordID, "date", "missing or unparseable date")
		}
		if rec.Amount.IsNegative() {
			return nil, apperrors.NewRecordValidationError(rec.RecordID, "amount", "amount must not be negative")
		}
		if rec.PartyID == "" {
			return nil, apperrors.NewRecordValidationError(rec.RecordID, "partyID", "missing party reference")
		}
		txns = append(txns, domain.Transaction{
			TransactionID: rec.RecordID,
			CompanyID:     rec.CompanyID,
			PartyID:       rec.PartyID,
			Date:          rec.Date,
			Kind:          kind,
			Amount:        rec.Amount,
			Particulars:   rec.Particulars,
			SequenceHint:  rec.SequenceHint,
		})
	}
	return txns, nil
}

// kindForRecord maps a record source onto a transaction kind for the given role.
// A customer ledger carries sales and payments received; a supplier ledger carries
// purchases and payments made. A source that does not belong to the role is a
// validation failure, not a silent drop.
func kindForRecord(rec domain.RawRecord, role domain.PartyRole) (domain.TransactionKind, error) {
	switch role {
	case domain.RoleCustomer:
		switch rec.Source {
		case domain.SourceSale:
			return domain.KindSale, nil
		case domain.SourcePayment:
			return domain.KindPaymentReceived, nil
		}
	case domain.RoleSupplier:
		switch rec.Source {
		case domain.SourcePurchase:
			return domain.KindPurchase, nil
		case domain.SourcePayment:
			return domain.KindPaymentMade, nil
		}
	}
	return "", apperrors.NewRecordValidationError(rec.RecordID, "source", "record source "+string(rec.Source)+" not valid for role "+string(role))
}
