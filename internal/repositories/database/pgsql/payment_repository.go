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

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payments.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

var FULL_PAYMENT_SELECT_QUERY = `
SELECT
	p.payment_id, p.company_id, p.party_id, p.fiscal_year_id,
	p.direction, p.date, p.amount, p.mode, p.remarks, p.sequence_no,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM payments p
`

// getPayments runs the base select with the given filter and collects the rows.
func (r *PgxPaymentRepository) getPayments(ctx context.Context, filterQuery string, args ...any) ([]domain.Payment, error) {
	query := FULL_PAYMENT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments", err)
	}
	defer rows.Close()
	payments, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Payment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Payment{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect payment rows", err)
	}
	return payments, nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error) {
	payments, err := r.getPayments(ctx, `WHERE p.company_id = $1 AND p.payment_id = $2`, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &payments[0], nil
}

// ListPaymentsByParty retrieves a party's payments with date in [from, to).
// Zero bounds leave that side of the window open.
func (r *PgxPaymentRepository) ListPaymentsByParty(ctx context.Context, companyID, partyID string, from, to time.Time) ([]domain.Payment, error) {
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

	return r.getPayments(ctx, filter, args...)
}

// ListPayments pages through a company's payments, newest first.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
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

	payments, err := r.getPayments(ctx, filter, args...)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(payments) > limit {
		payments = payments[:limit]
		last := payments[len(payments)-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}
	return payments, token, nil
}

// SavePayment inserts a payment, assigning the next per-party sequence number
// for its date.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	query := `
		INSERT INTO payments (
			payment_id, company_id, party_id, fiscal_year_id,
			direction, date, amount, mode, remarks, sequence_no,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			(SELECT COALESCE(MAX(sequence_no), 0) + 1 FROM payments WHERE company_id = $2 AND party_id = $3 AND date = $6),
			$10, $11, $12, $13
		)
		RETURNING sequence_no;
	`
	err := r.Pool.QueryRow(ctx, query,
		payment.PaymentID,
		payment.CompanyID,
		payment.PartyID,
		payment.FiscalYearID,
		payment.Direction,
		payment.Date,
		payment.Amount,
		payment.Mode,
		payment.Remarks,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	).Scan(&payment.SequenceNo)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return nil, apperrors.NewConflictError("payment ID " + payment.PaymentID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return nil, apperrors.NewValidationFailedError("party or fiscal year does not exist")
			}
		}
		return nil, apperrors.NewAppError(500, "failed to save payment "+payment.PaymentID, err)
	}
	return &payment, nil
}

func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, companyID, paymentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM payments WHERE company_id = $1 AND payment_id = $2`, companyID, paymentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete payment "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
