package accounting

import (
	"fmt"
	"sort"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the direction dictated by the transaction kind to its
// magnitude, debit positive. This is the single place the sign convention lives;
// both the ledger fold and the summary totals go through it.
func SignedAmount(txn domain.Transaction) (decimal.Decimal, error) {
	direction, ok := txn.Kind.Direction()
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q on transaction %s", apperrors.ErrUnsupportedKind, txn.Kind, txn.TransactionID)
	}
	if direction == domain.Credit {
		return txn.Amount.Neg(), nil
	}
	return txn.Amount, nil
}

// BuildLedger computes a party's account statement: transactions sorted
// chronologically, one row per transaction with the amount on its debit or credit
// side, and a running balance folded left to right from the opening balance.
//
// Same-day entries are ordered by SequenceHint so that what a user entered first
// appears first; the sort must stay stable on that key. The input slice is not
// mutated and the result is deterministic for identical inputs.
func BuildLedger(opening domain.Balance, txns []domain.Transaction) (*domain.LedgerResult, error) {
	if opening.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidOpeningBalance, opening.Amount.String())
	}

	ordered := make([]domain.Transaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].SequenceHint < ordered[j].SequenceHint
	})

	result := &domain.LedgerResult{
		OpeningBalance: opening,
		Rows:           make([]domain.LedgerRow, 0, len(ordered)),
		ClosingBalance: opening,
	}

	running := opening.Signed()
	for _, txn := range ordered {
		signed, err := SignedAmount(txn)
		if err != nil {
			return nil, err
		}

		row := domain.LedgerRow{
			Date:        txn.Date,
			Particulars: txn.Particulars,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		direction, _ := txn.Kind.Direction()
		if direction == domain.Debit {
			row.Debit = txn.Amount
		} else {
			row.Credit = txn.Amount
		}

		// Re-express the signed total as amount+type after every step; a fold that
		// crosses zero flips the balance type on that row.
		running = running.Add(signed)
		balance := domain.BalanceFromSigned(running)
		row.RunningBalance = balance.Amount
		row.RunningBalanceType = balance.Type

		result.Rows = append(result.Rows, row)
	}

	result.ClosingBalance = domain.BalanceFromSigned(running)
	return result, nil
}
