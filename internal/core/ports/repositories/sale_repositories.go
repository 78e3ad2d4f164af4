package repositories

import (
	"context"
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
)

// SaleReader defines read operations for sale entries.
type SaleReader interface {
	// FindSaleByID retrieves a sale entry scoped to a company.
	FindSaleByID(ctx context.Context, companyID, saleID string) (*domain.SaleEntry, error)

	// ListSalesByParty retrieves a party's sale entries with date in [from, to).
	// A zero `from` means unbounded below; a zero `to` means unbounded above.
	ListSalesByParty(ctx context.Context, companyID, partyID string, from, to time.Time) ([]domain.SaleEntry, error)

	// ListSales retrieves a paginated list of a company's sale entries, newest first.
	ListSales(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.SaleEntry, *string, error)
}

// SaleWriter defines write operations for sale entries.
type SaleWriter interface {
	// SaveSale persists a new sale entry, assigning the next sequence number.
	SaveSale(ctx context.Context, sale domain.SaleEntry) (*domain.SaleEntry, error)

	// UpdateSale updates an existing sale entry.
	UpdateSale(ctx context.Context, sale domain.SaleEntry) error

	// DeleteSale removes a sale entry.
	DeleteSale(ctx context.Context, companyID, saleID string) error
}

// SaleRepositoryFacade combines all sale repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
