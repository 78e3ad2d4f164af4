package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	portsrepo "github.com/billsphere/billing_backend/internal/core/ports/repositories"
	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/utils/accounting"
)

// ledgerService implements the LedgerSvcFacade interface. It assembles a party's
// raw entries from the sale, purchase and payment repositories and delegates the
// arithmetic to the accounting package.
type ledgerService struct {
	BaseService
	partyRepo    portsrepo.PartyReader
	saleRepo     portsrepo.SaleReader
	purchaseRepo portsrepo.PurchaseReader
	paymentRepo  portsrepo.PaymentReader
}

// NewLedgerService creates a new ledger service with the provided dependencies
func NewLedgerService(
	partyRepo portsrepo.PartyReader,
	saleRepo portsrepo.SaleReader,
	purchaseRepo portsrepo.PurchaseReader,
	paymentRepo portsrepo.PaymentReader,
	authorizer portssvc.CompanyAuthorizerSvc,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService:  BaseService{CompanyAuthorizer: authorizer},
		partyRepo:    partyRepo,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		paymentRepo:  paymentRepo,
	}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// fetchRecords collects a party's entries with date in [from, to) as raw records.
// Zero bounds mean unbounded on that side. Only the sources relevant to the
// party's role are fetched; a customer has no purchase bills by construction.
func (s *ledgerService) fetchRecords(ctx context.Context, companyID, partyID string, role domain.PartyRole, from, to time.Time) ([]domain.RawRecord, error) {
	var records []domain.RawRecord

	switch role {
	case domain.RoleCustomer:
		sales, err := s.saleRepo.ListSalesByParty(ctx, companyID, partyID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch sales: %w", err)
		}
		for i := range sales {
			records = append(records, sales[i].ToRawRecord())
		}
	case domain.RoleSupplier:
		purchases, err := s.purchaseRepo.ListPurchasesByParty(ctx, companyID, partyID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch purchases: %w", err)
		}
		for i := range purchases {
			records = append(records, purchases[i].ToRawRecord())
		}
	default:
		return nil, fmt.Errorf("%w: unknown party role %q", apperrors.ErrValidation, role)
	}

	payments, err := s.paymentRepo.ListPaymentsByParty(ctx, companyID, partyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}
	for i := range payments {
		records = append(records, payments[i].ToRawRecord())
	}

	return records, nil
}

// buildLedgerWindow normalizes and folds the records of [from, to) on top of the
// given opening balance.
func buildLedgerWindow(records []domain.RawRecord, role domain.PartyRole, opening domain.Balance) (*domain.LedgerResult, error) {
	txns, err := accounting.NormalizeRecords(records, role)
	if err != nil {
		return nil, err
	}
	return accounting.BuildLedger(opening, txns)
}

// PartyStatement builds the running-balance statement of a party for [from, to].
// Entries dated before the window fold into the window's opening balance, so the
// statement always reconciles against the full history.
func (s *ledgerService) PartyStatement(ctx context.Context, companyID, partyID string, from, to time.Time, requestingUserID string) (*domain.Party, *domain.LedgerResult, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	if from.IsZero() || to.IsZero() {
		return nil, nil, fmt.Errorf("%w: statement window requires both from and to dates", apperrors.ErrValidation)
	}
	if to.Before(from) {
		return nil, nil, fmt.Errorf("%w: to date must not precede from date", apperrors.ErrValidation)
	}

	party, err := s.partyRepo.FindPartyByID(ctx, companyID, partyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find party for statement",
				slog.String("party_id", partyID))
		}
		return nil, nil, err
	}

	// Fold everything before the window into the opening balance
	preRecords, err := s.fetchRecords(ctx, companyID, partyID, party.Role, time.Time{}, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch pre-window records", slog.String("party_id", partyID))
		return nil, nil, err
	}
	preResult, err := buildLedgerWindow(preRecords, party.Role, party.OpeningBalanceValue())
	if err != nil {
		return nil, nil, err
	}

	// Repositories treat the upper bound as exclusive; the statement window is
	// inclusive of the to date.
	windowRecords, err := s.fetchRecords(ctx, companyID, partyID, party.Role, from, to.AddDate(0, 0, 1))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch statement records", slog.String("party_id", partyID))
		return nil, nil, err
	}
	result, err := buildLedgerWindow(windowRecords, party.Role, preResult.ClosingBalance)
	if err != nil {
		return nil, nil, err
	}

	s.LogDebug(ctx, "Statement built",
		slog.String("party_id", partyID),
		slog.Int("rows", len(result.Rows)))
	return party, result, nil
}

// PartySummary aggregates a party's full history into totals and the amount due
func (s *ledgerService) PartySummary(ctx context.Context, companyID, partyID string, requestingUserID string) (*domain.Party, *domain.PartySummary, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	party, err := s.partyRepo.FindPartyByID(ctx, companyID, partyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find party for summary",
				slog.String("party_id", partyID))
		}
		return nil, nil, err
	}

	summary, err := s.summarizeParty(ctx, party)
	if err != nil {
		return nil, nil, err
	}
	return party, summary, nil
}

// summarizeParty computes the summary of one party over its full history
func (s *ledgerService) summarizeParty(ctx context.Context, party *domain.Party) (*domain.PartySummary, error) {
	records, err := s.fetchRecords(ctx, party.CompanyID, party.PartyID, party.Role, time.Time{}, time.Time{})
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch records for summary", slog.String("party_id", party.PartyID))
		return nil, err
	}

	txns, err := accounting.NormalizeRecords(records, party.Role)
	if err != nil {
		return nil, err
	}

	summary, err := accounting.Summarize(party.OpeningBalanceValue(), txns, party.Role, party.CreditLimitAmount)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// DueList computes the summary of every active party of the given role.
// Backing the receivables (CUSTOMER) and payables (SUPPLIER) reports.
func (s *ledgerService) DueList(ctx context.Context, companyID string, role domain.PartyRole, requestingUserID string) ([]domain.PartyDue, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if role != domain.RoleCustomer && role != domain.RoleSupplier {
		return nil, fmt.Errorf("%w: unknown party role %q", apperrors.ErrValidation, role)
	}

	parties, err := s.partyRepo.ListActivePartiesByRole(ctx, companyID, role)
	if err != nil {
		s.LogError(ctx, err, "Failed to list parties for due list",
			slog.String("company_id", companyID),
			slog.String("role", string(role)))
		return nil, err
	}

	dues := make([]domain.PartyDue, 0, len(parties))
	for i := range parties {
		summary, err := s.summarizeParty(ctx, &parties[i])
		if err != nil {
			return nil, fmt.Errorf("failed to summarize party %s: %w", parties[i].PartyID, err)
		}
		dues = append(dues, domain.PartyDue{
			Party:   parties[i],
			Summary: *summary,
		})
	}

	return dues, nil
}
