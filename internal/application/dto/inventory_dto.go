package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest alta de un ítem de inventario.
type CreateInventoryItemRequest struct {
	SKU         string          `json:"sku" validate:"required,max=64"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	WarehouseID string          `json:"warehouse_id" validate:"omitempty,uuid"`
	UnitMeasure string          `json:"unit_measure" validate:"omitempty,max=20"`
	Quantity    int64           `json:"quantity" validate:"gte=0"`
	MinStock    int64           `json:"min_stock" validate:"gte=0"`
	MaxStock    int64           `json:"max_stock" validate:"gte=0,gtefield=MinStock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// InventoryItemResponse ítem con estado y valor derivados.
type InventoryItemResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	WarehouseID string          `json:"warehouse_id,omitempty"`
	UnitMeasure string          `json:"unit_measure,omitempty"`
	Quantity    int64           `json:"quantity"`
	MinStock    int64           `json:"min_stock"`
	MaxStock    int64           `json:"max_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Status      string          `json:"status"`
	TotalValue  string          `json:"total_value"` // 2 decimales
	AboveMax    bool            `json:"above_max"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InventoryListRequest filtros de listado (query string).
type InventoryListRequest struct {
	WarehouseID string `query:"warehouse_id"`
	Search      string `query:"search"`
	Status      string `query:"status"`
	PageRequest
}

// InventoryListResponse listado de ítems.
type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// AdjustStockRequest movimiento de stock. IN/OUT cantidad positiva; ADJUSTMENT con signo.
type AdjustStockRequest struct {
	Type     string `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity int64  `json:"quantity" validate:"required"`
	Reason   string `json:"reason" validate:"omitempty,max=500"`
}

// Normalize acepta el tipo sin importar mayúsculas.
func (r *AdjustStockRequest) Normalize() {
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
}

// TransferStockRequest traslado de stock del ítem a otra bodega.
type TransferStockRequest struct {
	ToWarehouseID string `json:"to_warehouse_id" validate:"required,uuid"`
	Quantity      int64  `json:"quantity" validate:"required,gt=0"`
	Reason        string `json:"reason" validate:"omitempty,max=500"`
}

// TransferStockResponse ítems de origen y destino y los dos movimientos del traslado.
type TransferStockResponse struct {
	TransactionID string                `json:"transaction_id"`
	Source        InventoryItemResponse `json:"source"`
	Destination   InventoryItemResponse `json:"destination"`
	Movements     []MovementResponse    `json:"movements"`
}

// MovementResponse movimiento registrado.
type MovementResponse struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id,omitempty"`
	ItemID        string    `json:"item_id"`
	Type          string    `json:"type"`
	Delta         int64     `json:"delta"`
	QuantityAfter int64     `json:"quantity_after"`
	Reason        string    `json:"reason,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// AdjustStockResponse ítem actualizado y movimiento generado.
type AdjustStockResponse struct {
	Item     InventoryItemResponse `json:"item"`
	Movement MovementResponse      `json:"movement"`
}

// InventorySummaryResponse conteo por estado y valor total del inventario.
type InventorySummaryResponse struct {
	TotalItems int    `json:"total_items"`
	InStock    int    `json:"in_stock"`
	LowStock   int    `json:"low_stock"`
	Critical   int    `json:"critical"`
	AboveMax   int    `json:"above_max"`
	TotalValue string `json:"total_value"`
}
