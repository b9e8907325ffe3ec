package repository

import (
	"context"

	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
)

// StaffRepository puerto de persistencia para Staff.
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id string) (*entity.Staff, error)
	// GetForUpdate bloquea la fila del staff dentro de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Staff, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Staff, error)
}
