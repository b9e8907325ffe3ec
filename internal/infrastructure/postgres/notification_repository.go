package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación sobre PostgreSQL.
// Create necesita una transacción; con el pool abre una propia.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// beginner lo cumplen pgxpool.Pool y pgx.Tx.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Create inserta la notificación y una fila de lectura por destinatario en la misma transacción.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification, recipientIDs []string) error {
	b, ok := r.q.(beginner)
	if !ok {
		return r.insert(ctx, r.q, n, recipientIDs)
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin notification tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := r.insert(ctx, tx, n, recipientIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *NotificationRepo) insert(ctx context.Context, q Querier, n *entity.Notification, recipientIDs []string) error {
	query := `
		INSERT INTO notifications (id, title, message, type, priority, created_by, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := q.Exec(ctx, query, n.ID, n.Title, n.Message, n.Type, n.Priority,
		nullString(n.CreatedBy), n.ExpiresAt, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	_, err = q.Exec(ctx, `
		INSERT INTO user_notifications (notification_id, user_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`, n.ID, recipientIDs)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("%w: unknown recipient", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert notification recipients: %w", err)
	}
	return nil
}

// ListForUser notificaciones vigentes del usuario, más recientes primero.
func (r *NotificationRepo) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.UserNotification, error) {
	if !validID(userID) {
		return nil, nil
	}
	query := `
		SELECT n.id, n.title, n.message, n.type, n.priority, n.created_by, n.expires_at, n.created_at,
			un.user_id, un.read_at
		FROM user_notifications un
		JOIN notifications n ON n.id = un.notification_id
		WHERE un.user_id = $1
		  AND (n.expires_at IS NULL OR n.expires_at > now())
		  AND (NOT $2 OR un.read_at IS NULL)
		ORDER BY n.created_at DESC
		LIMIT NULLIF($3, 0) OFFSET $4`
	rows, err := r.q.Query(ctx, query, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserNotification
	for rows.Next() {
		var un entity.UserNotification
		var createdBy *string
		if err := rows.Scan(&un.ID, &un.Title, &un.Message, &un.Type, &un.Priority, &createdBy,
			&un.ExpiresAt, &un.CreatedAt, &un.UserID, &un.ReadAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		un.CreatedBy = derefString(createdBy)
		list = append(list, &un)
	}
	return list, rows.Err()
}

// MarkRead marca como leída. Idempotente; ErrNotFound si el usuario no es destinatario.
func (r *NotificationRepo) MarkRead(ctx context.Context, notificationID, userID string) error {
	if !validID(notificationID) || !validID(userID) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE user_notifications SET read_at = COALESCE(read_at, now())
		WHERE notification_id = $1 AND user_id = $2`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
