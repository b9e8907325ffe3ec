package repository

import (
	"context"

	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.User, error)
	// ListActiveIDsByRoles IDs de usuarios activos con alguno de los roles; roles vacío = todos.
	ListActiveIDsByRoles(ctx context.Context, roles []string) ([]string, error)
}
