package inventory

import (
	"fmt"

	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/shopspring/decimal"
)

// StockStatus estado derivado de un ítem. Nunca se persiste.
type StockStatus string

const (
	StatusCritical StockStatus = "Critical"
	StatusLowStock StockStatus = "Low Stock"
	StatusInStock  StockStatus = "In Stock"
)

// rank ordena los estados de peor a mejor.
func (s StockStatus) rank() int {
	switch s {
	case StatusCritical:
		return 0
	case StatusLowStock:
		return 1
	default:
		return 2
	}
}

// WorseThan indica si s es un estado peor que other.
func (s StockStatus) WorseThan(other StockStatus) bool {
	return s.rank() < other.rank()
}

// ParseStockStatus convierte el texto recibido en un filtro (acepta "Low Stock", "low_stock", "critical"...).
func ParseStockStatus(raw string) (StockStatus, error) {
	switch raw {
	case "Critical", "critical", "CRITICAL":
		return StatusCritical, nil
	case "Low Stock", "low_stock", "low-stock", "LOW_STOCK", "low":
		return StatusLowStock, nil
	case "In Stock", "in_stock", "in-stock", "IN_STOCK", "ok":
		return StatusInStock, nil
	}
	return "", fmt.Errorf("%w: estado de stock desconocido %q", domain.ErrInvalidInput, raw)
}

// Thresholds umbrales de derivación. Solo se construye con NewThresholds.
type Thresholds struct {
	criticalRatio decimal.Decimal
}

// NewThresholds valida la razón crítica: debe estar en (0, 1].
// Un ítem es Critical cuando quantity < min_stock * ratio.
func NewThresholds(ratio decimal.Decimal) (Thresholds, error) {
	if !ratio.IsPositive() || ratio.GreaterThan(decimal.NewFromInt(1)) {
		return Thresholds{}, fmt.Errorf("%w: razón crítica %s fuera de (0, 1]", domain.ErrInvalidInput, ratio)
	}
	return Thresholds{criticalRatio: ratio}, nil
}

// ParseThresholds parsea la razón crítica desde texto (configuración).
func ParseThresholds(raw string) (Thresholds, error) {
	ratio, err := decimal.NewFromString(raw)
	if err != nil {
		return Thresholds{}, fmt.Errorf("%w: razón crítica %q: %v", domain.ErrInvalidInput, raw, err)
	}
	return NewThresholds(ratio)
}

// CriticalRatio devuelve la razón configurada.
func (t Thresholds) CriticalRatio() decimal.Decimal {
	return t.criticalRatio
}

// DeriveStatus deriva el estado a partir de cantidad y niveles.
// Se compara en decimal para no perder precisión con min * ratio.
// Cantidades por encima de max siguen siendo In Stock.
func DeriveStatus(quantity, min, max int64, th Thresholds) StockStatus {
	q := decimal.NewFromInt(quantity)
	criticalBelow := decimal.NewFromInt(min).Mul(th.criticalRatio)
	switch {
	case q.LessThan(criticalBelow):
		return StatusCritical
	case quantity < min:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// AboveMax indica sobre-stock (solo informativo).
func AboveMax(quantity, max int64) bool {
	return max > 0 && quantity > max
}

// TotalValue = quantity * unitPrice, exacto.
func TotalValue(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(quantity).Mul(unitPrice)
}

// ValidateLevels valida cantidad, niveles y precio de un ítem.
func ValidateLevels(quantity, min, max int64, unitPrice decimal.Decimal) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}
	if min < 0 || max < 0 {
		return fmt.Errorf("%w: min_stock y max_stock deben ser >= 0", domain.ErrInvalidInput)
	}
	if min > max {
		return fmt.Errorf("%w: min_stock (%d) mayor que max_stock (%d)", domain.ErrInvalidInput, min, max)
	}
	if unitPrice.IsNegative() {
		return fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}
