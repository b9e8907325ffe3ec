package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste con signo
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre bodegas
)

// InventoryMovement registra un cambio de stock sobre un ítem.
type InventoryMovement struct {
	ID            string
	TransactionID string // agrupa salida y entrada de un traslado
	ItemID        string
	Type          string
	Delta         int64 // positivo entrada, negativo salida
	QuantityAfter int64
	Reason        string
	CreatedBy     string // UserID
	CreatedAt     time.Time
}
