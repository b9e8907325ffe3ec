package repository

import (
	"context"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
)

// PayrollRepository puerto de persistencia para liquidaciones.
type PayrollRepository interface {
	// Upsert inserta o reemplaza la liquidación de (staff, período).
	Upsert(ctx context.Context, p *entity.Payroll) error
	GetByID(ctx context.Context, id string) (*entity.Payroll, error)
	ListByPeriod(ctx context.Context, start, end time.Time) ([]*entity.Payroll, error)
}
