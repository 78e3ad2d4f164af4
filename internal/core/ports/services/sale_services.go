package services

import (
	"context"

	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/billsphere/billing_backend/internal/dto"
)

// SaleReaderSvc defines read operations for sale entries
type SaleReaderSvc interface {
	// GetSaleByID retrieves a sale entry within a company.
	GetSaleByID(ctx context.Context, companyID, saleID string, requestingUserID string) (*domain.SaleEntry, error)

	// ListSales retrieves a paginated list of a company's sale entries.
	ListSales(ctx context.Context, companyID string, limit int, nextToken *string, requestingUserID string) ([]domain.SaleEntry, *string, error)
}

// SaleWriterSvc defines write operations for sale entries
type SaleWriterSvc interface {
	// CreateSale records a sales invoice against a customer.
	CreateSale(ctx context.Context, companyID string, req dto.CreateSaleRequest, creatorUserID string) (*domain.SaleEntry, error)

	// DeleteSale removes a sale entry.
	DeleteSale(ctx context.Context, companyID, saleID string, requestingUserID string) error
}

// SaleSvcFacade combines all sale-related service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
}
