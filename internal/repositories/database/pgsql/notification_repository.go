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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for notifications.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepositoryFacade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

var FULL_NOTIFICATION_SELECT_QUERY = `
SELECT
	n.notification_id, n.company_id, n.type, n.message, n.reference_id, n.is_read, n.created_at
FROM notifications n
`

// ListNotifications pages through a company's notifications, newest first. The
// next token encodes the (created_at, notification_id) cursor of the last row.
func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, companyID string, unreadOnly bool, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	filter := `WHERE n.company_id = $1`
	args := []any{companyID}

	if unreadOnly {
		filter += ` AND NOT n.is_read`
	}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewValidationFailedError("invalid pagination token")
		}
		createdAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid pagination token")
		}
		args = append(args, createdAt, fields[1])
		filter += ` AND (n.created_at, n.notification_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, limit+1)
	filter += ` ORDER BY n.created_at DESC, n.notification_id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, FULL_NOTIFICATION_SELECT_QUERY+filter, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query notifications", err)
	}
	defer rows.Close()
	notifications, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Notification])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Notification{}, nil, nil
		}
		return nil, nil, apperrors.NewAppError(500, "failed to collect notification rows", err)
	}

	var token *string
	if len(notifications) > limit {
		notifications = notifications[:limit]
		last := notifications[len(notifications)-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.NotificationID)
		token = &t
	}
	return notifications, token, nil
}

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, company_id, type, message, reference_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		n.NotificationID,
		n.CompanyID,
		n.Type,
		n.Message,
		n.ReferenceID,
		n.IsRead,
		n.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save notification "+n.NotificationID, err)
	}
	return nil
}

func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, companyID, notificationID string) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE company_id = $1 AND notification_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, notificationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark notification read "+notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
