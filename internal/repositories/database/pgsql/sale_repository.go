package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	portsrepo "github.com/billsphere/billing_backend/internal/core/ports/repositories"
	"github.com/billsphere/billing_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for sale entries.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSaleRepository implements portsrepo.SaleRepositoryFacade
var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

var FULL_SALE_SELECT_QUERY = `
SELECT
	s.sale_id, s.company_id, s.party_id, s.fiscal_year_id,
	s.invoice_number, s.date, s.amount, s.particulars, s.sequence_no,
	s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
FROM sales s
`

// getSales runs the base select with the given filter and collects the rows.
func (r *PgxSaleRepository) getSales(ctx context.Context, filterQuery string, args ...any) ([]domain.SaleEntry, error) {
	query := FULL_SALE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sales", err)
	}
	defer rows.Close()
	sales, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.SaleEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.SaleEntry{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect sale rows", err)
	}
	return sales, nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, companyID, saleID string) (*domain.SaleEntry, error) {
	sales, err := r.getSales(ctx, `WHERE s.company_id = $1 AND s.sale_id = $2`, companyID, saleID)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &sales[0], nil
}

// ListSalesByParty retrieves a party's sale entries with date in [from, to).
// Zero bounds leave that side of the window open.
func (r *PgxSaleRepository) ListSalesByParty(ctx context.Context, companyID, partyID string, from, to time.Time) ([]domain.SaleEntry, error) {
	filter := `WHERE s.company_id = $1 AND s.party_id = $2`
	args := []any{companyID, partyID}

	if !from.IsZero() {
		args = append(args, from)
		filter += ` AND s.date >= $` + strconv.Itoa(len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		filter += ` AND s.date < $` + strconv.Itoa(len(args))
	}
	filter += ` ORDER BY s.date, s.sequence_no`

	return r.getSales(ctx, filter, args...)
}

// ListSales pages through a company's sale entries, newest first.
func (r *PgxSaleRepository) ListSales(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.SaleEntry, *string, error) {
	filter := `WHERE s.company_id = $1`
	args := []any{companyID}

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid pagination token")
		}
		args = append(args, entryDate, createdAt)
		filter += ` AND (s.date, s.created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, limit+1)
	filter += ` ORDER BY s.date DESC, s.created_at DESC LIMIT $` + strconv.Itoa(len(args))

	sales, err := r.getSales(ctx, filter, args...)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(sales) > limit {
		sales = sales[:limit]
		last := sales[len(sales)-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return sales, token, nil
}

// SaveSale inserts a sale entry, assigning the next per-party sequence number
// for its date so same-day entries keep their insertion order in statements.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.SaleEntry) (*domain.SaleEntry, error) {
	query := `
		INSERT INTO sales (
			sale_id, company_id, party_id, fiscal_year_id,
			invoice_number, date, amount, particulars, sequence_no,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			(SELECT COALESCE(MAX(sequence_no), 0) + 1 FROM sales WHERE company_id = $2 AND party_id = $3 AND date = $6),
			$9, $10, $11, $12
		)
		RETURNING sequence_no;
	`
	err := r.Pool.QueryRow(ctx, query,
		sale.SaleID,
		sale.CompanyID,
		sale.PartyID,
		sale.FiscalYearID,
		sale.InvoiceNumber,
		sale.Date,
		sale.Amount,
		sale.Particulars,
		sale.CreatedAt,
		sale.CreatedBy,
		sale.LastUpdatedAt,
		sale.LastUpdatedBy,
	).Scan(&sale.SequenceNo)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return nil, apperrors.NewConflictError("invoice number " + sale.InvoiceNumber + " already exists for this company")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return nil, apperrors.NewValidationFailedError("party or fiscal year does not exist")
			}
		}
		return nil, apperrors.NewAppError(500, "failed to save sale "+sale.SaleID, err)
	}
	return &sale, nil
}

func (r *PgxSaleRepository) UpdateSale(ctx context.Context, sale domain.SaleEntry) error {
	query := `
		UPDATE sales
		SET invoice_number = $3, amount = $4, particulars = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE company_id = $1 AND sale_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		sale.CompanyID,
		sale.SaleID,
		sale.InvoiceNumber,
		sale.Amount,
		sale.Particulars,
		sale.LastUpdatedAt,
		sale.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update sale "+sale.SaleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSaleRepository) DeleteSale(ctx context.Context, companyID, saleID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM sales WHERE company_id = $1 AND sale_id = $2`, companyID, saleID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete sale "+saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
