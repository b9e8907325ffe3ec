package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem producto o materia prima almacenada en una bodega.
// El estado (In Stock / Low Stock / Critical) y el valor total se derivan, no se persisten.
type InventoryItem struct {
	ID          string
	SKU         string
	Name        string
	WarehouseID string
	UnitMeasure string
	Quantity    int64
	MinStock    int64
	MaxStock    int64
	UnitPrice   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InventoryFilter criterios de listado de ítems.
type InventoryFilter struct {
	WarehouseID string
	Search      string // coincide con nombre o SKU
	Limit       int
	Offset      int
}
