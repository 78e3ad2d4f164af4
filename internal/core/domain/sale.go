package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleEntry is a sales invoice against a customer.
type SaleEntry struct {
	SaleID        string          `json:"saleID"` // Primary Key (e.g., UUID)
	CompanyID     string          `json:"companyID"`
	PartyID       string          `json:"partyID"` // Customer
	FiscalYearID  string          `json:"fiscalYearID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"` // Invoice total, non-negative
	Particulars   string          `json:"particulars"`
	SequenceNo    int64           `json:"sequenceNo"` // Insertion order, ledger tie-breaker
	AuditFields
}

// ToRawRecord converts the entry to the shape consumed by NormalizeRecords.
func (s SaleEntry) ToRawRecord() RawRecord {
	particulars := s.Particulars
	if particulars == "" {
		particulars = "Sale invoice " + s.InvoiceNumber
	}
	return RawRecord{
		RecordID:     s.SaleID,
		Source:       SourceSale,
		CompanyID:    s.CompanyID,
		PartyID:      s.PartyID,
		Date:         s.Date,
		Amount:       s.Amount,
		Particulars:  particulars,
		SequenceHint: s.SequenceNo,
	}
}
