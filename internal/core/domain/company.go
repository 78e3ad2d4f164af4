package domain

import "time"

// UserCompanyRole defines a user's role within a company.
type UserCompanyRole string

const (
	RoleOwner    UserCompanyRole = "OWNER"
	RoleAdmin    UserCompanyRole = "ADMIN"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READ_ONLY"
)

// rank orders roles for permission checks; higher rank implies the lower ones.
func (r UserCompanyRole) rank() int {
	switch r {
	case RoleOwner:
		return 4
	case RoleAdmin:
		return 3
	case RoleMember:
		return 2
	case RoleReadOnly:
		return 1
	default:
		return 0
	}
}

// Covers reports whether role r satisfies the required role.
func (r UserCompanyRole) Covers(required UserCompanyRole) bool {
	return r.rank() >= required.rank()
}

// Company is the tenant boundary; every party, entry and payment is scoped to one.
type Company struct {
	CompanyID string `json:"companyID"` // Primary Key (e.g., UUID)
	Name      string `json:"name"`
	PAN       string `json:"pan"` // Company tax ID, printed on statements
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	AuditFields
}

// UserCompany is a user's membership in a company.
type UserCompany struct {
	UserID    string          `json:"userID"`
	CompanyID string          `json:"companyID"`
	Role      UserCompanyRole `json:"role"`
	JoinedAt  time.Time       `json:"joinedAt"`
}
