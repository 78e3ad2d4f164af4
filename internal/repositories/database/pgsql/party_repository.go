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

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for party data.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

var FULL_PARTY_SELECT_QUERY = `
SELECT
	p.party_id, p.company_id, p.role, p.name, p.pan, p.address, p.phone, p.email,
	p.opening_balance, p.opening_balance_type,
	p.credit_limit_amount, p.credit_time_period_in_days,
	p.is_active,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM parties p
`

// getParties runs the base select with the given filter and collects the rows.
func (r *PgxPartyRepository) getParties(ctx context.Context, filterQuery string, args ...any) ([]domain.Party, error) {
	query := FULL_PARTY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query parties", err)
	}
	defer rows.Close()
	parties, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Party])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Party{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect party rows", err)
	}
	return parties, nil
}

func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, companyID, partyID string) (*domain.Party, error) {
	parties, err := r.getParties(ctx, `WHERE p.company_id = $1 AND p.party_id = $2`, companyID, partyID)
	if err != nil {
		return nil, err
	}
	if len(parties) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &parties[0], nil
}

// ListParties pages through a company's parties in name order. The next token
// encodes the (name, party_id) cursor of the last returned row.
func (r *PgxPartyRepository) ListParties(ctx context.Context, companyID string, role *domain.PartyRole, limit int, nextToken *string) ([]domain.Party, *string, error) {
	filter := `WHERE p.company_id = $1`
	args := []any{companyID}

	if role != nil {
		args = append(args, *role)
		filter += ` AND p.role = $2`
	}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewValidationFailedError("invalid pagination token")
		}
		args = append(args, fields[0], fields[1])
		filter += ` AND (p.name, p.party_id) > ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	// Fetch one extra row to know whether another page exists
	args = append(args, limit+1)
	filter += ` ORDER BY p.name, p.party_id LIMIT $` + strconv.Itoa(len(args))

	parties, err := r.getParties(ctx, filter, args...)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(parties) > limit {
		parties = parties[:limit]
		last := parties[len(parties)-1]
		t := pagination.EncodeMultiFieldToken(last.Name, last.PartyID)
		token = &t
	}
	return parties, token, nil
}

func (r *PgxPartyRepository) ListActivePartiesByRole(ctx context.Context, companyID string, role domain.PartyRole) ([]domain.Party, error) {
	filter := `WHERE p.company_id = $1 AND p.role = $2 AND p.is_active ORDER BY p.name, p.party_id`
	return r.getParties(ctx, filter, companyID, role)
}

func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	query := `
		INSERT INTO parties (
			party_id, company_id, role, name, pan, address, phone, email,
			opening_balance, opening_balance_type,
			credit_limit_amount, credit_time_period_in_days,
			is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		party.PartyID,
		party.CompanyID,
		party.Role,
		party.Name,
		party.PAN,
		party.Address,
		party.Phone,
		party.Email,
		party.OpeningBalance,
		party.OpeningBalanceType,
		party.CreditLimitAmount,
		party.CreditTimePeriodInDays,
		party.IsActive,
		party.CreatedAt,
		party.CreatedBy,
		party.LastUpdatedAt,
		party.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("party ID " + party.PartyID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("company does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save party "+party.PartyID, err)
	}
	return nil
}

func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	query := `
		UPDATE parties
		SET name = $3, pan = $4, address = $5, phone = $6, email = $7,
			credit_limit_amount = $8, credit_time_period_in_days = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE company_id = $1 AND party_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		party.CompanyID,
		party.PartyID,
		party.Name,
		party.PAN,
		party.Address,
		party.Phone,
		party.Email,
		party.CreditLimitAmount,
		party.CreditTimePeriodInDays,
		party.LastUpdatedAt,
		party.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update party "+party.PartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPartyRepository) DeactivateParty(ctx context.Context, companyID, partyID, userID string, now time.Time) error {
	query := `
		UPDATE parties
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $1 AND party_id = $2 AND is_active;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, partyID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate party "+partyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
