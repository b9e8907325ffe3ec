package repository

import (
	"context"

	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
)

// InventoryItemRepository puerto de persistencia para ítems de inventario.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
	List(ctx context.Context, filter entity.InventoryFilter) ([]*entity.InventoryItem, error)
	// ListBySKUForUpdate bloquea todas las filas del SKU (una por bodega) en orden de ID.
	ListBySKUForUpdate(ctx context.Context, sku string) ([]*entity.InventoryItem, error)
}

// InventoryMovementRepository puerto de persistencia para movimientos.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
