package repository

import (
	"context"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
)

// AttendanceRepository puerto de persistencia para jornadas.
type AttendanceRepository interface {
	Create(ctx context.Context, rec *entity.AttendanceRecord) error
	// Update persiste salida, horas y estado.
	Update(ctx context.Context, rec *entity.AttendanceRecord) error
	// GetOpenByStaff jornada abierta más reciente del staff o (nil, nil).
	GetOpenByStaff(ctx context.Context, staffID string) (*entity.AttendanceRecord, error)
	// ListByStaff jornadas del staff, más recientes primero.
	ListByStaff(ctx context.Context, staffID string, limit int) ([]*entity.AttendanceRecord, error)
	// List jornadas filtradas con nombre del staff y el total sin paginar.
	List(ctx context.Context, filter entity.AttendanceFilter) ([]*entity.AttendanceRecord, int64, error)
	// SumHours suma horas de jornadas cerradas con fecha en [from, to].
	SumHours(ctx context.Context, staffID string, from, to time.Time) (float64, error)
}
