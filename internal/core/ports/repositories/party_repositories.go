package repositories

import (
	"context"
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
)

// PartyReader defines read operations for party data.
type PartyReader interface {
	// FindPartyByID retrieves a party scoped to a company.
	FindPartyByID(ctx context.Context, companyID, partyID string) (*domain.Party, error)

	// ListParties retrieves a paginated list of parties for a company, optionally
	// filtered by role. Returns the parties and a token for the next page.
	ListParties(ctx context.Context, companyID string, role *domain.PartyRole, limit int, nextToken *string) ([]domain.Party, *string, error)

	// ListActivePartiesByRole retrieves every active party of the given role in a
	// company. Used by due-list aggregation, which walks all parties at once.
	ListActivePartiesByRole(ctx context.Context, companyID string, role domain.PartyRole) ([]domain.Party, error)
}

// PartyWriter defines write operations for party data.
type PartyWriter interface {
	// SaveParty persists a new party.
	SaveParty(ctx context.Context, party domain.Party) error

	// UpdateParty updates an existing party's mutable fields.
	UpdateParty(ctx context.Context, party domain.Party) error

	// DeactivateParty soft-deletes a party.
	DeactivateParty(ctx context.Context, companyID, partyID, userID string, now time.Time) error
}

// PartyRepositoryFacade combines all party repository interfaces.
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}
