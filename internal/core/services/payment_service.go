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
	"github.com/billsphere/billing_backend/internal/dto"
	"github.com/google/uuid"
)

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	paymentRepo    portsrepo.PaymentRepositoryFacade
	partyRepo      portsrepo.PartyReader
	fiscalYearsSvc portssvc.FiscalYearReaderSvc
	notifier       portssvc.NotificationSvcFacade
}

// PaymentServiceOption configures optional dependencies of the payment service.
type PaymentServiceOption func(*paymentService)

// WithPaymentNotifier wires a notification sink for recorded payments.
func WithPaymentNotifier(notifier portssvc.NotificationSvcFacade) PaymentServiceOption {
	return func(s *paymentService) {
		s.notifier = notifier
	}
}

// NewPaymentService creates a new payment service with the provided dependencies
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	partyRepo portsrepo.PartyReader,
	fiscalYearsSvc portssvc.FiscalYearReaderSvc,
	authorizer portssvc.CompanyAuthorizerSvc,
	opts ...PaymentServiceOption,
) portssvc.PaymentSvcFacade {
	s := &paymentService{
		BaseService:    BaseService{CompanyAuthorizer: authorizer},
		paymentRepo:    paymentRepo,
		partyRepo:      partyRepo,
		fiscalYearsSvc: fiscalYearsSvc,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure paymentService implements the PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// GetPaymentByID retrieves a payment within a company
func (s *paymentService) GetPaymentByID(ctx context.Context, companyID, paymentID string, requestingUserID string) (*domain.Payment, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, companyID, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment by ID", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

// ListPayments retrieves a paginated list of a company's payments
func (s *paymentService) ListPayments(ctx context.Context, companyID string, limit int, nextToken *string, requestingUserID string) ([]domain.Payment, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	payments, token, err := s.paymentRepo.ListPayments(ctx, companyID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("company_id", companyID))
		return nil, nil, err
	}
	return payments, token, nil
}

// CreatePayment records a payment. Direction IN settles customer dues, OUT
// settles supplier dues; a mismatch with the party's role is rejected.
func (s *paymentService) CreatePayment(ctx context.Context, companyID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	party, err := s.partyRepo.FindPartyByID(ctx, companyID, req.PartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: party %s not found", apperrors.ErrValidation, req.PartyID)
		}
		return nil, fmt.Errorf("failed to validate party: %w", err)
	}
	if !party.IsActive {
		return nil, fmt.Errorf("%w: party %s is inactive", apperrors.ErrValidation, req.PartyID)
	}

	direction := domain.PaymentDirection(req.Direction)
	switch direction {
	case domain.PaymentIn:
		if party.Role != domain.RoleCustomer {
			return nil, fmt.Errorf("%w: payments IN can only be received from customers", apperrors.ErrValidation)
		}
	case domain.PaymentOut:
		if party.Role != domain.RoleSupplier {
			return nil, fmt.Errorf("%w: payments OUT can only be made to suppliers", apperrors.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown payment direction %q", apperrors.ErrValidation, req.Direction)
	}

	fy, err := s.fiscalYearsSvc.GetFiscalYearForDate(ctx, companyID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no open fiscal year covers %s", apperrors.ErrValidation, req.Date)
		}
		return nil, err
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:    uuid.NewString(),
		CompanyID:    companyID,
		PartyID:      req.PartyID,
		FiscalYearID: fy.FiscalYearID,
		Direction:    direction,
		Date:         date,
		Amount:       req.Amount,
		Mode:         req.Mode,
		Remarks:      req.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.paymentRepo.SavePayment(ctx, payment)
	if err != nil {
		s.LogError(ctx, err, "Failed to save payment",
			slog.String("company_id", companyID),
			slog.String("party_id", req.PartyID))
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	// A failed notification never fails the payment itself
	if s.notifier != nil {
		if err := s.notifier.NotifyPayment(ctx, saved, party.Name); err != nil {
			s.LogError(ctx, err, "Failed to record payment notification",
				slog.String("payment_id", saved.PaymentID))
		}
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", saved.PaymentID),
		slog.String("direction", string(saved.Direction)))
	return saved, nil
}

// DeletePayment removes a payment unless its fiscal year is closed
func (s *paymentService) DeletePayment(ctx context.Context, companyID, paymentID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, companyID, paymentID)
	if err != nil {
		return err
	}

	fy, err := s.fiscalYearsSvc.GetFiscalYearByID(ctx, companyID, payment.FiscalYearID, requestingUserID)
	if err != nil {
		return err
	}
	if fy.IsClosed {
		return fmt.Errorf("%w: fiscal year %s is closed", apperrors.ErrValidation, fy.Name)
	}

	if err := s.paymentRepo.DeletePayment(ctx, companyID, paymentID); err != nil {
		s.LogError(ctx, err, "Failed to delete payment", slog.String("payment_id", paymentID))
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	s.LogInfo(ctx, "Payment deleted", slog.String("payment_id", paymentID))
	return nil
}
