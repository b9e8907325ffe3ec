package memory

import (
	"context"
	"sort"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo notificaciones en memoria.
type NotificationRepo struct {
	s  *Store
	tx bool
}

// NewNotificationRepository construye el repositorio.
func NewNotificationRepository(s *Store) *NotificationRepo { return &NotificationRepo{s: s} }

// Create guarda la notificación y la deja sin leer para cada destinatario.
func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification, recipientIDs []string) error {
	defer r.s.lock(r.tx)()
	r.s.notifications[n.ID] = *n
	for _, uid := range recipientIDs {
		box, ok := r.s.inbox[uid]
		if !ok {
			box = make(map[string]*time.Time)
			r.s.inbox[uid] = box
		}
		box[n.ID] = nil
	}
	return nil
}

// ListForUser bandeja del usuario sin expiradas, más recientes primero.
func (r *NotificationRepo) ListForUser(_ context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.UserNotification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	now := time.Now()
	var out []*entity.UserNotification
	for nid, readAt := range r.s.inbox[userID] {
		if unreadOnly && readAt != nil {
			continue
		}
		n := r.s.notifications[nid]
		if n.ExpiresAt != nil && n.ExpiresAt.Before(now) {
			continue
		}
		out = append(out, &entity.UserNotification{Notification: n, UserID: userID, ReadAt: readAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

// MarkRead marca como leída; idempotente.
func (r *NotificationRepo) MarkRead(_ context.Context, notificationID, userID string) error {
	defer r.s.lock(r.tx)()
	box := r.s.inbox[userID]
	readAt, ok := box[notificationID]
	if !ok {
		return domain.ErrNotFound
	}
	if readAt == nil {
		now := time.Now()
		box[notificationID] = &now
	}
	return nil
}
