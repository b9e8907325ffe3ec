package inventory

import (
	"fmt"

	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
)

// ApplyMovement calcula la nueva cantidad tras un movimiento.
// IN y OUT reciben cantidad positiva; ADJUSTMENT recibe delta con signo.
// Devuelve la nueva cantidad y el delta con signo aplicado.
func ApplyMovement(current int64, movementType string, quantity int64) (int64, int64, error) {
	var delta int64
	switch movementType {
	case entity.MovementTypeIN:
		if quantity <= 0 {
			return 0, 0, fmt.Errorf("%w: la entrada requiere cantidad positiva", domain.ErrInvalidInput)
		}
		delta = quantity
	case entity.MovementTypeOUT:
		if quantity <= 0 {
			return 0, 0, fmt.Errorf("%w: la salida requiere cantidad positiva", domain.ErrInvalidInput)
		}
		delta = -quantity
	case entity.MovementTypeADJUSTMENT:
		if quantity == 0 {
			return 0, 0, fmt.Errorf("%w: el ajuste no puede ser cero", domain.ErrInvalidInput)
		}
		delta = quantity
	default:
		return 0, 0, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, movementType)
	}
	next := current + delta
	if next < 0 {
		return 0, 0, domain.ErrInsufficientStock
	}
	return next, delta, nil
}

// ApplyTransfer mueve quantity del origen al destino. Devuelve las cantidades resultantes.
func ApplyTransfer(source, destination, quantity int64) (int64, int64, error) {
	if quantity <= 0 {
		return 0, 0, fmt.Errorf("%w: el traslado requiere cantidad positiva", domain.ErrInvalidInput)
	}
	if source < quantity {
		return 0, 0, domain.ErrInsufficientStock
	}
	return source - quantity, destination + quantity, nil
}
