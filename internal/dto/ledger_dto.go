package dto

import (
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PartyHeaderResponse is the statement header block: party identity fields passed
// through untouched from the party record for rendering and print views.
type PartyHeaderResponse struct {
	PartyID string `json:"partyID"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	PAN     string `json:"pan"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// BalanceResponse is an amount plus its debit/credit direction.
type BalanceResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

// LedgerRowResponse is one statement line ready for table or print rendering; no
// numeric value needs re-deriving on the client.
type LedgerRowResponse struct {
	Date               string          `json:"date"`
	Particulars        string          `json:"particulars"`
	Debit              decimal.Decimal `json:"debit"`
	Credit             decimal.Decimal `json:"credit"`
	RunningBalance     decimal.Decimal `json:"runningBalance"`
	RunningBalanceType string          `json:"runningBalanceType"`
}

// StatementResponse is the full party statement response.
type StatementResponse struct {
	Party          PartyHeaderResponse `json:"party"`
	FromDate       string              `json:"fromDate"`
	ToDate         string              `json:"toDate"`
	OpeningBalance BalanceResponse     `json:"openingBalance"`
	Rows           []LedgerRowResponse `json:"rows"`
	ClosingBalance BalanceResponse     `json:"closingBalance"`
}

// PartySummaryResponse is the aggregate-only projection for dashboards.
type PartySummaryResponse struct {
	Party               PartyHeaderResponse `json:"party"`
	TotalSales          decimal.Decimal     `json:"totalSales"`
	TotalPurchases      decimal.Decimal     `json:"totalPurchases"`
	TotalPayments       decimal.Decimal     `json:"totalPayments"`
	PrevClosingBalance  decimal.Decimal     `json:"prevClosingBalance"`
	TotalDue            decimal.Decimal     `json:"totalDue"`
	CreditLimitExceeded bool                `json:"creditLimitExceeded"`
}

// DueListResponse lists per-party dues for one role across a company.
type DueListResponse struct {
	AsOf     string                 `json:"asOf"`
	Role     string                 `json:"role"`
	Parties  []PartySummaryResponse `json:"parties"`
	TotalDue decimal.Decimal        `json:"totalDue"`
}

// ToPartyHeaderResponse converts a domain.Party into the statement header block.
func ToPartyHeaderResponse(p *domain.Party) PartyHeaderResponse {
	return PartyHeaderResponse{
		PartyID: p.PartyID,
		Name:    p.Name,
		Role:    string(p.Role),
		PAN:     p.PAN,
		Address: p.Address,
		Phone:   p.Phone,
	}
}

func toBalanceResponse(b domain.Balance) BalanceResponse {
	return BalanceResponse{Amount: b.Amount, Type: string(b.Type)}
}

// ToStatementResponse converts a ledger result plus its party into the statement DTO.
func ToStatementResponse(party *domain.Party, result *domain.LedgerResult, from, to time.Time) StatementResponse {
	rows := make([]LedgerRowResponse, len(result.Rows))
	for i, row := range result.Rows {
		rows[i] = LedgerRowResponse{
			Date:               row.Date.Format("2006-01-02"),
			Particulars:        row.Particulars,
			Debit:              row.Debit,
			Credit:             row.Credit,
			RunningBalance:     row.RunningBalance,
			RunningBalanceType: string(row.RunningBalanceType),
		}
	}
	return StatementResponse{
		Party:          ToPartyHeaderResponse(party),
		FromDate:       from.Format("2006-01-02"),
		ToDate:         to.Format("2006-01-02"),
		OpeningBalance: toBalanceResponse(result.OpeningBalance),
		Rows:           rows,
		ClosingBalance: toBalanceResponse(result.ClosingBalance),
	}
}

// ToPartySummaryResponse converts a party summary into its DTO.
func ToPartySummaryResponse(party *domain.Party, summary *domain.PartySummary) PartySummaryResponse {
	return PartySummaryResponse{
		Party:               ToPartyHeaderResponse(party),
		TotalSales:          summary.TotalSales,
		TotalPurchases:      summary.TotalPurchases,
		TotalPayments:       summary.TotalPayments,
		PrevClosingBalance:  summary.PrevClosingBalance,
		TotalDue:            summary.TotalDue,
		CreditLimitExceeded: summary.CreditLimitExceeded,
	}
}

// ToDueListResponse converts per-party dues into the due-list DTO, totalling the
// dues as it goes.
func ToDueListResponse(dues []domain.PartyDue, role domain.PartyRole, asOf time.Time) DueListResponse {
	response := DueListResponse{
		AsOf:     asOf.Format("2006-01-02"),
		Role:     string(role),
		Parties:  make([]PartySummaryResponse, len(dues)),
		TotalDue: decimal.Zero,
	}
	for i, due := range dues {
		party := due.Party
		summary := due.Summary
		response.Parties[i] = ToPartySummaryResponse(&party, &summary)
		response.TotalDue = response.TotalDue.Add(summary.TotalDue)
	}
	return response
}
