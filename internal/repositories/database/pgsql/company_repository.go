package pgsql

import (
	"context"
	"errors"

	"github.com/billsphere/billing_backend/internal/apperrors"
	"github.com/billsphere/billing_backend/internal/core/domain"
	portsrepo "github.com/billsphere/billing_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

var FULL_COMPANY_SELECT_QUERY = `
SELECT
	c.company_id, c.name, c.pan, c.address, c.phone,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM companies c
`

// getCompanies runs the base select with the given filter and collects the rows.
func (r *PgxCompanyRepository) getCompanies(ctx context.Context, filterQuery string, args ...any) ([]domain.Company, error) {
	query := FULL_COMPANY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies", err)
	}
	defer rows.Close()
	companies, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Company])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Company{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect company rows", err)
	}
	return companies, nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	companies, err := r.getCompanies(ctx, `WHERE c.company_id = $1`, companyID)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &companies[0], nil
}

func (r *PgxCompanyRepository) ListCompaniesByUserID(ctx context.Context, userID string) ([]domain.Company, error) {
	filter := `
		JOIN user_companies uc ON uc.company_id = c.company_id
		WHERE uc.user_id = $1
		ORDER BY c.name
	`
	return r.getCompanies(ctx, filter, userID)
}

func (r *PgxCompanyRepository) FindUserCompanyRole(ctx context.Context, userID, companyID string) (*domain.UserCompany, error) {
	query := `
		SELECT user_id, company_id, role, joined_at
		FROM user_companies
		WHERE user_id = $1 AND company_id = $2;
	`
	var membership domain.UserCompany
	err := r.Pool.QueryRow(ctx, query, userID, companyID).Scan(
		&membership.UserID,
		&membership.CompanyID,
		&membership.Role,
		&membership.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company membership", err)
	}
	return &membership, nil
}

// SaveCompany inserts the company and the creator's OWNER membership in one
// transaction; a company must never exist without an owner.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, creator domain.UserCompany) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	companyQuery := `
		INSERT INTO companies (
			company_id, name, pan, address, phone,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, companyQuery,
		company.CompanyID,
		company.Name,
		company.PAN,
		company.Address,
		company.Phone,
		company.CreatedAt,
		company.CreatedBy,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("company ID " + company.CompanyID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save company "+company.CompanyID, err)
	}

	membershipQuery := `
		INSERT INTO user_companies (user_id, company_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err = tx.Exec(ctx, membershipQuery,
		creator.UserID,
		creator.CompanyID,
		creator.Role,
		creator.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save creator membership", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	query := `
		UPDATE companies
		SET name = $2, pan = $3, address = $4, phone = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE company_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		company.CompanyID,
		company.Name,
		company.PAN,
		company.Address,
		company.Phone,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update company "+company.CompanyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCompanyRepository) AddUserToCompany(ctx context.Context, membership domain.UserCompany) error {
	query := `
		INSERT INTO user_companies (user_id, company_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.CompanyID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("user is already a member of this company")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("user or company does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to add user to company", err)
	}
	return nil
}
