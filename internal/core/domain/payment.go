package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentDirection says which way the money moved.
type PaymentDirection string

const (
	// PaymentIn is money collected from a customer.
	PaymentIn PaymentDirection = "IN"
	// PaymentOut is money paid to a supplier.
	PaymentOut PaymentDirection = "OUT"
)

// Payment records money received from a customer or paid to a supplier.
type Payment struct {
	PaymentID    string           `json:"paymentID"` // Primary Key (e.g., UUID)
	CompanyID    string           `json:"companyID"`
	PartyID      string           `json:"partyID"`
	FiscalYearID string           `json:"fiscalYearID"`
	Direction    PaymentDirection `json:"direction"`
	Date         time.Time        `json:"date"`
	Amount       decimal.Decimal  `json:"amount"` // Non-negative
	Mode         string           `json:"mode"`   // cash, cheque, transfer...
	Remarks      string           `json:"remarks"`
	SequenceNo   int64            `json:"sequenceNo"` // Insertion order, ledger tie-breaker
	AuditFields
}

// ToRawRecord converts the payment to the shape consumed by NormalizeRecords.
func (p Payment) ToRawRecord() RawRecord {
	particulars := p.Remarks
	if particulars == "" {
		particulars = "Payment (" + p.Mode + ")"
	}
	return RawRecord{
		RecordID:     p.PaymentID,
		Source:       SourcePayment,
		CompanyID:    p.CompanyID,
		PartyID:      p.PartyID,
		Date:         p.Date,
		Amount:       p.Amount,
		Particulars:  particulars,
		SequenceHint: p.SequenceNo,
	}
}
