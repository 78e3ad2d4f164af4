package domain

import "time"

// FiscalYear is a company-scoped accounting period. Statement endpoints default
// their window to the active (open) fiscal year.
type FiscalYear struct {
	FiscalYearID string    `json:"fiscalYearID"` // Primary Key (e.g., UUID)
	CompanyID    string    `json:"companyID"`
	Name         string    `json:"name"` // e.g. "2081/82"
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	IsClosed     bool      `json:"isClosed"`
	AuditFields
}

// Contains reports whether d falls inside the fiscal year, inclusive of both ends.
func (fy FiscalYear) Contains(d time.Time) bool {
	return !d.Before(fy.StartDate) && !d.After(fy.EndDate)
}
