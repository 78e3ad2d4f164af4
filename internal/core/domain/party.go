package domain

import (
	"github.com/shopspring/decimal"
)

// PartyRole distinguishes the two ledger conventions: a customer's balance grows on
// the debit side with sales, a supplier's grows on the credit side with purchases.
type PartyRole string

const (
	RoleCustomer PartyRole = "CUSTOMER"
	RoleSupplier PartyRole = "SUPPLIER"
)

// Party represents a customer or supplier within one company.
type Party struct {
	PartyID   string    `json:"partyID"`   // Primary Key (e.g., UUID)
	CompanyID string    `json:"companyID"` // FK -> companies.company_id (Not Null)
	Role      PartyRole `json:"role"`      // CUSTOMER or SUPPLIER
	Name      string    `json:"name"`      // Display name
	PAN       string    `json:"pan"`       // Tax ID, passed through to statement headers
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`

	// Balance carried in from before this system; direction in OpeningBalanceType.
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceType BalanceType     `json:"openingBalanceType"`

	// Credit policy, used only for the exceeded-flag check. A zero limit means no
	// limit is configured.
	CreditLimitAmount      decimal.Decimal `json:"creditLimitAmount"`
	CreditTimePeriodInDays int             `json:"creditTimePeriodInDays"`

	IsActive bool `json:"isActive"` // Soft delete flag
	AuditFields
}

// OpeningBalanceValue returns the party's stored opening balance as a Balance pair.
func (p Party) OpeningBalanceValue() Balance {
	t := p.OpeningBalanceType
	if t == "" {
		t = Debit
	}
	return Balance{Amount: p.OpeningBalance, Type: t}
}
