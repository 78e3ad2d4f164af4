package services

import (
	"context"

	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/billsphere/billing_backend/internal/dto"
)

// PartyReaderSvc defines read operations for party data
type PartyReaderSvc interface {
	// GetPartyByID retrieves a party within a company.
	GetPartyByID(ctx context.Context, companyID, partyID string, requestingUserID string) (*domain.Party, error)

	// ListParties retrieves a paginated list of a company's parties, optionally
	// filtered by role.
	ListParties(ctx context.Context, companyID string, role *domain.PartyRole, limit int, nextToken *string, requestingUserID string) ([]domain.Party, *string, error)
}

// PartyWriterSvc defines write operations for party data
type PartyWriterSvc interface {
	// CreateParty persists a new customer or supplier.
	CreateParty(ctx context.Context, companyID string, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error)

	// UpdateParty updates a party's mutable fields. The opening balance is
	// immutable once set; it anchors every statement computed for the party.
	UpdateParty(ctx context.Context, companyID, partyID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Party, error)

	// DeactivateParty soft-deletes a party.
	DeactivateParty(ctx context.Context, companyID, partyID string, requestingUserID string) error
}

// PartySvcFacade combines all party-related service interfaces
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
}
