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

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase entries.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryFacade {
	return &PgxPurchaseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPurchaseRepository implements portsrepo.PurchaseRepositoryFacade
var _ portsrepo.PurchaseRepositoryFacade = (*PgxPurchaseRepository)(nil)

var FULL_PURCHASE_SELECT_QUERY = `
SELECT
	p.purchase_id, p.company_id, p.party_id, p.fiscal_year_id,
	p.bill_number, p.date, p.amount, p.particulars, p.sequence_no,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM purchases p
`

// getPurchases runs the base select with the given filter and collects the rows.
func (r *PgxPurchaseRepository) getPurchases(ctx context.Context, filterQuery string, args ...any) ([]domain.PurchaseEntry, error) {
	query := FULL_PURCHASE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query purchases", err)
	}
	defer rows.Close()
	purchases, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.PurchaseEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.PurchaseEntry{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect purchase rows", err)
	}
	return purchases, nil
}

func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, companyID, purchaseID string) (*domain.PurchaseEntry, error) {
	purchases, err := r.getPurchases(ctx, `WHERE p.company_id = $1 AND p.purchase_id = $2`, companyID, purchaseID)
	if err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &purchases[0], nil
}

// ListPurchasesByParty retrieves a party's purchase entries with date in [from, to).
// Zero bounds leave that side of the window open.
func (r *PgxPurchaseRepository) ListPurchasesByParty(ctx context.Context, companyID, partyID string, from, to time.Time) ([]domain.PurchaseEntry, error) {
	filter := `WHERE p.company_id = $1 AND p.party_id = $2`
	args := []any{companyID, partyID}

	if !from.IsZero() {
		args = append(args, from)
		filter += ` AND p.date >= $` + strconv.Itoa(len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		filter += ` AND p.date < $` + strconv.Itoa(len(args))
	}
	filter += ` ORDER BY p.date, p.sequence_no`

	return r.getPurchases(ctx, filter, args...)
}

// ListPurchases pages through a company's purchase entries, newest first.
func (r *PgxPurchaseRepository) ListPurchases(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.PurchaseEntry, *string, error) {
	filter := `WHERE p.company_id = $1`
	args := []any{companyID}

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid pagination token")
		}
		args = append(args, entryDate, createdAt)
		filter += ` AND (p.date, p.created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, limit+1)
	filter += ` ORDER BY p.date DESC, p.created_at DESC LIMIT $` + strconv.Itoa(len(args))

	purchases, err := r.getPurchases(ctx, filter, args...)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(purchases) > limit {
		purchases = purchases[:limit]
		last := purchases[len(purchases)-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return purchases, token, nil
}

// SavePurchase inserts a purchase entry, assigning the next per-party sequence
// number for its date.
func (r *PgxPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.PurchaseEntry) (*domain.PurchaseEntry, error) {
	query := `
		INSERT INTO purchases (
			purchase_id, company_id, party_id, fiscal_year_id,
			bill_number, date, amount, particulars, sequence_no,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			(SELECT COALESCE(MAX(sequence_no), 0) + 1 FROM purchases WHERE company_id = $2 AND party_id = $3 AND date = $6),
			$9, $10, $11, $12
		)
		RETURNING sequence_no;
	`
	err := r.Pool.QueryRow(ctx, query,
		purchase.PurchaseID,
		purchase.CompanyID,
		purchase.PartyID,
		purchase.FiscalYearID,
		purchase.BillNumber,
		purchase.Date,
		purchase.Amount,
		purchase.Particulars,
		purchase.CreatedAt,
		purchase.CreatedBy,
		purchase.LastUpdatedAt,
		purchase.LastUpdatedBy,
	).Scan(&purchase.SequenceNo)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return nil, apperrors.NewConflictError("purchase ID " + purchase.PurchaseID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return nil, apperrors.NewValidationFailedError("party or fiscal year does not exist")
			}
		}
		return nil, apperrors.NewAppError(500, "failed to save purchase "+purchase.PurchaseID, err)
	}
	return &purchase, nil
}

func (r *PgxPurchaseRepository) UpdatePurchase(ctx context.Context, purchase domain.PurchaseEntry) error {
	query := `
		UPDATE purchases
		SET bill_number = $3, amount = $4, particulars = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE company_id = $1 AND purchase_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		purchase.CompanyID,
		purchase.PurchaseID,
		purchase.BillNumber,
		purchase.Amount,
		purchase.Particulars,
		purchase.LastUpdatedAt,
		purchase.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update purchase "+purchase.PurchaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPurchaseRepository) DeletePurchase(ctx context.Context, companyID, purchaseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM purchases WHERE company_id = $1 AND purchase_id = $2`, companyID, purchaseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete purchase "+purchaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
