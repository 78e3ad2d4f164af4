package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceType indicates the direction of a balance or a balance movement.
type BalanceType string

const (
	Debit  BalanceType = "DEBIT"
	Credit BalanceType = "CREDIT"
)

// TransactionKind classifies a normalized ledger transaction. The kind alone
// determines which side of the party balance the amount moves; amounts are never
// stored signed.
type TransactionKind string

const (
	// KindSale increases what a customer owes the business.
	KindSale TransactionKind = "SALE"
	// KindPurchase increases what the business owes a supplier.
	KindPurchase TransactionKind = "PURCHASE"
	// KindPaymentReceived is money collected from a customer.
	KindPaymentReceived TransactionKind = "PAYMENT_RECEIVED"
	// KindPaymentMade is money paid out to a supplier.
	KindPaymentMade TransactionKind = "PAYMENT_MADE"
)

// Direction returns the side of the party balance this kind moves.
// SALE and PAYMENT_MADE push the balance toward debit; PURCHASE and
// PAYMENT_RECEIVED push it toward credit. The boolean is false for an
// unrecognized kind.
func (k TransactionKind) Direction() (BalanceType, bool) {
	switch k {
	case KindSale, KindPaymentMade:
		return Debit, true
	case KindPurchase, KindPaymentReceived:
		return Credit, true
	default:
		return "", false
	}
}

// Transaction is one normalized financial event for a party, immutable once created.
// A ledger is always computed within one (CompanyID, PartyID) pair.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Source record ID (e.g., UUID)
	CompanyID     string          `json:"companyID"`     // Tenant scope (Not Null)
	PartyID       string          `json:"partyID"`       // FK -> Party.partyID (Not Null)
	Date          time.Time       `json:"date"`          // Calendar date, time-of-day not significant
	Kind          TransactionKind `json:"kind"`          // Determines debit/credit direction
	Amount        decimal.Decimal `json:"amount"`        // Non-negative magnitude
	Particulars   string          `json:"particulars"`   // Invoice no. / remarks, carried through
	SequenceHint  int64           `json:"sequenceHint"`  // Stable tie-breaker for same-day entries
}

// RecordSource identifies which kind of source record a RawRecord came from.
type RecordSource string

const (
	SourceSale     RecordSource = "SALE"
	SourcePurchase RecordSource = "PURCHASE"
	SourcePayment  RecordSource = "PAYMENT"
)

// RawRecord is the loosely validated shape of a sale, purchase or payment record as
// it arrives from storage or a request body, before normalization. A zero Date marks
// a missing or unparseable date from the boundary decode.
type RawRecord struct {
	RecordID     string          `json:"recordID"`
	Source       RecordSource    `json:"source"`
	CompanyID    string          `json:"companyID"`
	PartyID      string          `json:"partyID"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Particulars  string          `json:"particulars"`
	SequenceHint int64           `json:"sequenceHint"`
}
