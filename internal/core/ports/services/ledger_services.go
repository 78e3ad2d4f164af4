package services

import (
	"context"
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
)

// LedgerSvcFacade defines operations for party ledger statements and dues
type LedgerSvcFacade interface {
	// PartyStatement builds the running-balance statement of a party for the
	// window [from, to]. Entries before the window fold into the opening balance.
	PartyStatement(ctx context.Context, companyID, partyID string, from, to time.Time, requestingUserID string) (*domain.Party, *domain.LedgerResult, error)

	// PartySummary aggregates a party's activity into totals and the amount due.
	PartySummary(ctx context.Context, companyID, partyID string, requestingUserID string) (*domain.Party, *domain.PartySummary, error)

	// DueList computes the summary of every active party of the given role in a
	// company. Used for the receivables and payables reports.
	DueList(ctx context.Context, companyID string, role domain.PartyRole, requestingUserID string) ([]domain.PartyDue, error)
}
