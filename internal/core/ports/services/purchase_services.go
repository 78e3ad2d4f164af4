package services

import (
	"context"

	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/billsphere/billing_backend/internal/dto"
)

// PurchaseReaderSvc defines read operations for purchase entries
type PurchaseReaderSvc interface {
	// GetPurchaseByID retrieves a purchase entry within a company.
	GetPurchaseByID(ctx context.Context, companyID, purchaseID string, requestingUserID string) (*domain.PurchaseEntry, error)

	// ListPurchases retrieves a paginated list of a company's purchase entries.
	ListPurchases(ctx context.Context, companyID string, limit int, nextToken *string, requestingUserID string) ([]domain.PurchaseEntry, *string, error)
}

// PurchaseWriterSvc defines write operations for purchase entries
type PurchaseWriterSvc interface {
	// CreatePurchase records a purchase bill against a supplier.
	CreatePurchase(ctx context.Context, companyID string, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.PurchaseEntry, error)

	// DeletePurchase removes a purchase entry.
	DeletePurchase(ctx context.Context, companyID, purchaseID string, requestingUserID string) error
}

// PurchaseSvcFacade combines all purchase-related service interfaces
type PurchaseSvcFacade interface {
	PurchaseReaderSvc
	PurchaseWriterSvc
}
