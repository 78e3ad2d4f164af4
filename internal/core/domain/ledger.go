package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is a non-negative magnitude plus a direction. The pair representation
// avoids signed amounts leaking into stored or serialized data.
type Balance struct {
	Amount decimal.Decimal `json:"amount"`
	Type   BalanceType     `json:"type"`
}

// ZeroBalance returns a zero-amount debit balance.
func ZeroBalance() Balance {
	return Balance{Amount: decimal.Zero, Type: Debit}
}

// Signed converts the balance to a signed value, debit positive.
func (b Balance) Signed() decimal.Decimal {
	if b.Type == Credit {
		return b.Amount.Neg()
	}
	return b.Amount
}

// BalanceFromSigned re-expresses a signed value (debit positive) as amount+type.
func BalanceFromSigned(d decimal.Decimal) Balance {
	if d.IsNegative() {
		return Balance{Amount: d.Neg(), Type: Credit}
	}
	return Balance{Amount: d, Type: Debit}
}

// LedgerRow is one statement line: the transaction amount on its debit or credit
// side, plus the running balance after applying it. Exactly one of Debit/Credit is
// non-zero.
type LedgerRow struct {
	Date               time.Time       `json:"date"`
	Particulars        string          `json:"particulars"`
	Debit              decimal.Decimal `json:"debit"`
	Credit             decimal.Decimal `json:"credit"`
	RunningBalance     decimal.Decimal `json:"runningBalance"`
	RunningBalanceType BalanceType     `json:"runningBalanceType"`
}

// LedgerResult is a party's full account statement for a window: opening balance,
// chronologically ordered rows, and the closing balance. With zero rows the closing
// balance equals the opening balance.
type LedgerResult struct {
	OpeningBalance Balance     `json:"openingBalance"`
	Rows           []LedgerRow `json:"rows"`
	ClosingBalance Balance     `json:"closingBalance"`
}

// PartySummary is the cheap aggregate projection over the same transaction set:
// totals and the credit-limit flag without row-by-row detail. TotalDue is signed in
// the party's "owing" direction, so an overpayment shows as a negative due.
type PartySummary struct {
	TotalSales          decimal.Decimal `json:"totalSales"`
	TotalPurchases      decimal.Decimal `json:"totalPurchases"`
	TotalPayments       decimal.Decimal `json:"totalPayments"`
	PrevClosingBalance  decimal.Decimal `json:"prevClosingBalance"`
	TotalDue            decimal.Decimal `json:"totalDue"`
	CreditLimitExceeded bool            `json:"creditLimitExceeded"`
}

// PartyDue pairs a party with its summary for due-list reports.
type PartyDue struct {
	Party   Party        `json:"party"`
	Summary PartySummary `json:"summary"`
}
