package pgsql

import (
	portsrepo "github.com/billsphere/billing_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:      newPgxCompanyRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		PartyRepo:        newPgxPartyRepository(dbPool),
		SaleRepo:         newPgxSaleRepository(dbPool),
		PurchaseRepo:     newPgxPurchaseRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		FiscalYearRepo:   newPgxFiscalYearRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
