package services

import (
	portsrepo "github.com/billsphere/billing_backend/internal/core/ports/repositories"
	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first since it carries the authorizer the rest depend on
	container.Company = NewCompanyService(repos.CompanyRepo, repos.UserRepo)
	authorizer := container.Company.(portssvc.CompanyAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Party = NewPartyService(repos.PartyRepo, authorizer)
	container.FiscalYear = NewFiscalYearService(repos.FiscalYearRepo, authorizer)
	container.Notification = NewNotificationService(repos.NotificationRepo, authorizer)

	container.Ledger = NewLedgerService(
		repos.PartyRepo,
		repos.SaleRepo,
		repos.PurchaseRepo,
		repos.PaymentRepo,
		authorizer,
	)

	container.Sale = NewSaleService(
		repos.SaleRepo,
		repos.PartyRepo,
		container.FiscalYear,
		authorizer,
		WithCreditLimitAlerts(container.Ledger, container.Notification),
	)
	container.Purchase = NewPurchaseService(
		repos.PurchaseRepo,
		repos.PartyRepo,
		container.FiscalYear,
		authorizer,
	)
	container.Payment = NewPaymentService(
		repos.PaymentRepo,
		repos.PartyRepo,
		container.FiscalYear,
		authorizer,
		WithPaymentNotifier(container.Notification),
	)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
