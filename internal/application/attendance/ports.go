package attendance

import (
	"context"

	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repositorios atados a ella.
type TxRunner interface {
	RunAttendance(ctx context.Context, fn func(
		staffRepo repository.StaffRepository,
		attendanceRepo repository.AttendanceRepository,
	) error) error
}

// StaffLocker serializa las marcaciones de un mismo staff.
// Lock devuelve la función de liberación; si no obtiene el bloqueo devuelve domain.ErrBusy.
type StaffLocker interface {
	Lock(ctx context.Context, staffID string) (unlock func(), err error)
}

// ReportExporter genera la hoja de cálculo de asistencia.
type ReportExporter interface {
	AttendanceWorkbook(rows []dto.AttendanceResponse) ([]byte, error)
}
