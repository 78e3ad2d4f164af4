package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
	portsrepo "github.com/billsphere/billing_backend/internal/core/ports/repositories"
	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

// notificationService implements the NotificationSvcFacade interface
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates a new notification service with the provided dependencies
func NewNotificationService(
	notificationRepo portsrepo.NotificationRepositoryFacade,
	authorizer portssvc.CompanyAuthorizerSvc,
) portssvc.NotificationSvcFacade {
	return &notificationService{
		BaseService:      BaseService{CompanyAuthorizer: authorizer},
		notificationRepo: notificationRepo,
	}
}

// Ensure notificationService implements the NotificationSvcFacade interface
var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// ListNotifications retrieves a paginated list of a company's notifications
func (s *notificationService) ListNotifications(ctx context.Context, companyID string, unreadOnly bool, limit int, nextToken *string, requestingUserID string) ([]domain.Notification, *string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	notifications, token, err := s.notificationRepo.ListNotifications(ctx, companyID, unreadOnly, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.String("company_id", companyID))
		return nil, nil, err
	}
	return notifications, token, nil
}

// NotifyPayment records a notification for a received or sent payment
func (s *notificationService) NotifyPayment(ctx context.Context, payment *domain.Payment, partyName string) error {
	var notifType domain.NotificationType
	var message string
	if payment.Direction == domain.PaymentIn {
		notifType = domain.NotificationPaymentReceived
		message = fmt.Sprintf("Received %s from %s via %s", payment.Amount.StringFixed(2), partyName, payment.Mode)
	} else {
		notifType = domain.NotificationPaymentMade
		message = fmt.Sprintf("Paid %s to %s via %s", payment.Amount.StringFixed(2), partyName, payment.Mode)
	}

	n := domain.Notification{
		NotificationID: uuid.NewString(),
		CompanyID:      payment.CompanyID,
		Type:           notifType,
		Message:        message,
		ReferenceID:    payment.PaymentID,
		CreatedAt:      time.Now(),
	}

	if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
		return fmt.Errorf("failed to save payment notification: %w", err)
	}
	return nil
}

// NotifyCreditLimit records a notification when a party crosses its credit limit
func (s *notificationService) NotifyCreditLimit(ctx context.Context, companyID string, party *domain.Party) error {
	n := domain.Notification{
		NotificationID: uuid.NewString(),
		CompanyID:      companyID,
		Type:           domain.NotificationCreditLimit,
		Message:        fmt.Sprintf("%s has exceeded the credit limit of %s", party.Name, party.CreditLimitAmount.StringFixed(2)),
		ReferenceID:    party.PartyID,
		CreatedAt:      time.Now(),
	}

	if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
		return fmt.Errorf("failed to save credit limit notification: %w", err)
	}
	return nil
}

// MarkRead marks one notification as read
func (s *notificationService) MarkRead(ctx context.Context, companyID, notificationID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return err
	}

	if err := s.notificationRepo.MarkNotificationRead(ctx, companyID, notificationID); err != nil {
		s.LogError(ctx, err, "Failed to mark notification read", slog.String("notification_id", notificationID))
		return err
	}
	return nil
}
