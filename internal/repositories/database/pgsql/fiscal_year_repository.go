package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	portsrepo "github.com/billsphere/billing_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFiscalYearRepository struct {
	BaseRepository
}

// newPgxFiscalYearRepository creates a new repository for fiscal years.
func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepositoryFacade {
	return &PgxFiscalYearRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxFiscalYearRepository implements portsrepo.FiscalYearRepositoryFacade
var _ portsrepo.FiscalYearRepositoryFacade = (*PgxFiscalYearRepository)(nil)

var FULL_FISCAL_YEAR_SELECT_QUERY = `
SELECT
	fy.fiscal_year_id, fy.company_id, fy.name, fy.start_date, fy.end_date, fy.is_closed
FROM fiscal_years fy
`

// getFiscalYears runs the base select with the given filter and collects the rows.
func (r *PgxFiscalYearRepository) getFiscalYears(ctx context.Context, filterQuery string, args ...any) ([]domain.FiscalYear, error) {
	query := FULL_FISCAL_YEAR_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal years", err)
	}
	defer rows.Close()
	years, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.FiscalYear])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.FiscalYear{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect fiscal year rows", err)
	}
	return years, nil
}

func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, companyID, fiscalYearID string) (*domain.FiscalYear, error) {
	years, err := r.getFiscalYears(ctx, `WHERE fy.company_id = $1 AND fy.fiscal_year_id = $2`, companyID, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &years[0], nil
}

func (r *PgxFiscalYearRepository) FindFiscalYearForDate(ctx context.Context, companyID string, date time.Time) (*domain.FiscalYear, error) {
	years, err := r.getFiscalYears(ctx, `WHERE fy.company_id = $1 AND fy.start_date <= $2 AND fy.end_date >= $2`, companyID, date)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &years[0], nil
}

func (r *PgxFiscalYearRepository) ListFiscalYears(ctx context.Context, companyID string) ([]domain.FiscalYear, error) {
	return r.getFiscalYears(ctx, `WHERE fy.company_id = $1 ORDER BY fy.start_date DESC`, companyID)
}

func (r *PgxFiscalYearRepository) SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	query := `
		INSERT INTO fiscal_years (fiscal_year_id, company_id, name, start_date, end_date, is_closed)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		fy.FiscalYearID,
		fy.CompanyID,
		fy.Name,
		fy.StartDate,
		fy.EndDate,
		fy.IsClosed,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("fiscal year " + fy.Name + " already exists for this company")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("company does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save fiscal year "+fy.FiscalYearID, err)
	}
	return nil
}

func (r *PgxFiscalYearRepository) UpdateFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	query := `
		UPDATE fiscal_years
		SET name = $3, is_closed = $4
		WHERE company_id = $1 AND fiscal_year_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, fy.CompanyID, fy.FiscalYearID, fy.Name, fy.IsClosed)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fiscal year "+fy.FiscalYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
