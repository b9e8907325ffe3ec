package memory

import (
	"context"

	"github.com/astrobsm/ivanstamas-api/internal/application/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/application/inventory"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ attendance.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks de forma exclusiva; si fn falla se deshacen sus escrituras.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) run(fn func() error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	r.s.undo = nil
	defer func() { r.s.undo = nil }()
	if err := fn(); err != nil {
		r.s.rollback()
		return err
	}
	return nil
}

// Run transacción de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return r.run(func() error {
		return fn(&InventoryItemRepo{s: r.s, tx: true}, &InventoryMovementRepo{s: r.s, tx: true})
	})
}

// RunAttendance transacción de asistencia.
func (r *TxRunner) RunAttendance(ctx context.Context, fn func(
	staffRepo repository.StaffRepository,
	attendanceRepo repository.AttendanceRepository,
) error) error {
	return r.run(func() error {
		return fn(&StaffRepo{s: r.s, tx: true}, &AttendanceRepo{s: r.s, tx: true})
	})
}
