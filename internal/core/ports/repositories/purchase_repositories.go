package repositories

import (
	"context"
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
)

// PurchaseReader defines read operations for purchase entries.
type PurchaseReader interface {
	// FindPurchaseByID retrieves a purchase entry scoped to a company.
	FindPurchaseByID(ctx context.Context, companyID, purchaseID string) (*domain.PurchaseEntry, error)

	// ListPurchasesByParty retrieves a party's purchase entries with date in
	// [from, to). Zero bounds mean unbounded on that side.
	ListPurchasesByParty(ctx context.Context, companyID, partyID string, from, to time.Time) ([]domain.PurchaseEntry, error)

	// ListPurchases retrieves a paginated list of a company's purchase entries, newest first.
	ListPurchases(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.PurchaseEntry, *string, error)
}

// PurchaseWriter defines write operations for purchase entries.
type PurchaseWriter interface {
	// SavePurchase persists a new purchase entry, assigning the next sequence number.
	SavePurchase(ctx context.Context, purchase domain.PurchaseEntry) (*domain.PurchaseEntry, error)

	// UpdatePurchase updates an existing purchase entry.
	UpdatePurchase(ctx context.Context, purchase domain.PurchaseEntry) error

	// DeletePurchase removes a purchase entry.
	DeletePurchase(ctx context.Context, companyID, purchaseID string) error
}

// PurchaseRepositoryFacade combines all purchase repository interfaces.
type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWriter
}
