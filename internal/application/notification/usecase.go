// Package notification envía notificaciones internas y gestiona su lectura por usuario.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/inventory"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UseCase casos de uso de notificaciones.
type UseCase struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository, userRepo repository.UserRepository, log zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, userRepo: userRepo, log: log}
}

// Send crea una notificación para los destinatarios indicados, los roles indicados,
// o todos los usuarios activos si no se indica ninguno.
func (uc *UseCase) Send(ctx context.Context, createdBy string, in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	recipients, err := uc.resolveRecipients(ctx, in.RecipientIDs, in.Roles)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: la notificación no tiene destinatarios", domain.ErrInvalidInput)
	}
	n := &entity.Notification{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(in.Title),
		Message:   in.Message,
		Type:      defaultString(in.Type, entity.NotificationTypeInfo),
		Priority:  defaultString(in.Priority, entity.PriorityMedium),
		CreatedBy: createdBy,
		ExpiresAt: in.ExpiresAt,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, n, recipients); err != nil {
		return nil, err
	}
	uc.log.Info().Str("notification_id", n.ID).Int("recipients", len(recipients)).Msg("notificación enviada")
	out := toResponse(n)
	out.Recipients = len(recipients)
	return &out, nil
}

// ListMine bandeja del usuario, más recientes primero.
func (uc *UseCase) ListMine(ctx context.Context, userID string, unreadOnly bool, page dto.PageRequest) (*dto.NotificationListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListForUser(ctx, userID, unreadOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, un := range list {
		r := toResponse(&un.Notification)
		r.Read = un.ReadAt != nil
		r.ReadAt = un.ReadAt
		items = append(items, r)
	}
	return &dto.NotificationListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// MarkRead marca la notificación como leída por el usuario.
func (uc *UseCase) MarkRead(ctx context.Context, notificationID, userID string) error {
	return uc.repo.MarkRead(ctx, notificationID, userID)
}

// NotifyLowStock avisa a administradores y managers que un ítem empeoró de estado.
func (uc *UseCase) NotifyLowStock(ctx context.Context, item *entity.InventoryItem, status inventory.StockStatus) error {
	recipients, err := uc.userRepo.ListActiveIDsByRoles(ctx, []string{entity.RoleAdmin, entity.RoleManager})
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}
	priority := entity.PriorityMedium
	if status == inventory.StatusCritical {
		priority = entity.PriorityHigh
	}
	n := &entity.Notification{
		ID:        uuid.New().String(),
		Title:     fmt.Sprintf("%s: %s", status, item.Name),
		Message:   fmt.Sprintf("%s (%s) tiene %d unidades; mínimo %d.", item.Name, item.SKU, item.Quantity, item.MinStock),
		Type:      entity.NotificationTypeWarning,
		Priority:  priority,
		CreatedAt: time.Now(),
	}
	return uc.repo.Create(ctx, n, recipients)
}

func (uc *UseCase) resolveRecipients(ctx context.Context, ids, roles []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range ids {
		u, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, fmt.Errorf("%w: destinatario %s", domain.ErrUserNotFound, id)
		}
		add(id)
	}
	if len(roles) > 0 || len(ids) == 0 {
		byRole, err := uc.userRepo.ListActiveIDsByRoles(ctx, roles)
		if err != nil {
			return nil, err
		}
		for _, id := range byRole {
			add(id)
		}
	}
	return out, nil
}

func toResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Priority:  n.Priority,
		CreatedBy: n.CreatedBy,
		ExpiresAt: n.ExpiresAt,
		CreatedAt: n.CreatedAt,
	}
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
