package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Company      CompanySvcFacade
	User         UserSvcFacade
	Party        PartySvcFacade
	Sale         SaleSvcFacade
	Purchase     PurchaseSvcFacade
	Payment      PaymentSvcFacade
	FiscalYear   FiscalYearSvcFacade
	Ledger       LedgerSvcFacade
	Notification NotificationSvcFacade
	Token        TokenSvcFacade
	GoogleOAuth  GoogleOAuthHandlerSvcFacade
}
