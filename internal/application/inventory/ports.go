package inventory

import (
	"context"

	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/inventory"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para ajuste de stock + movimiento.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

// StockNotifier avisa cuando un ítem empeora a Low Stock o Critical.
type StockNotifier interface {
	NotifyLowStock(ctx context.Context, item *entity.InventoryItem, status inventory.StockStatus) error
}

// ReportExporter genera la hoja de cálculo de inventario.
type ReportExporter interface {
	InventoryWorkbook(rows []dto.InventoryItemResponse) ([]byte, error)
}
