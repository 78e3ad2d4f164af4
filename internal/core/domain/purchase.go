package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseEntry is a purchase bill from a supplier.
type PurchaseEntry struct {
	PurchaseID   string          `json:"purchaseID"` // Primary Key (e.g., UUID)
	CompanyID    string          `json:"companyID"`
	PartyID      string          `json:"partyID"` // Supplier
	FiscalYearID string          `json:"fiscalYearID"`
	BillNumber   string          `json:"billNumber"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"` // Bill total, non-negative
	Particulars  string          `json:"particulars"`
	SequenceNo   int64           `json:"sequenceNo"` // Insertion order, ledger tie-breaker
	AuditFields
}

// ToRawRecord converts the entry to the shape consumed by NormalizeRecords.
func (p PurchaseEntry) ToRawRecord() RawRecord {
	particulars := p.Particulars
	if particulars == "" {
		particulars = "Purchase bill " + p.BillNumber
	}
	return RawRecord{
		RecordID:     p.PurchaseID,
		Source:       SourcePurchase,
		CompanyID:    p.CompanyID,
		PartyID:      p.PartyID,
		Date:         p.Date,
		Amount:       p.Amount,
		Particulars:  particulars,
		SequenceHint: p.SequenceNo,
	}
}
