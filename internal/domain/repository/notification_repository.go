package repository

import (
	"context"

	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
)

// NotificationRepository puerto de persistencia para notificaciones y su estado por usuario.
type NotificationRepository interface {
	// Create persiste la notificación y una fila de lectura por destinatario.
	Create(ctx context.Context, n *entity.Notification, recipientIDs []string) error
	ListForUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.UserNotification, error)
	// MarkRead devuelve domain.ErrNotFound si el usuario no es destinatario.
	MarkRead(ctx context.Context, notificationID, userID string) error
}
