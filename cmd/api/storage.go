package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/astrobsm/ivanstamas-api/internal/application/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/application/inventory"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/memory"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/postgres"
	"github.com/astrobsm/ivanstamas-api/pkg/config"
)

// txRunner transacciones de inventario y de asistencia.
type txRunner interface {
	inventory.TxRunner
	attendance.TxRunner
}

// storage repositorios del driver configurado.
type storage struct {
	Users         repository.UserRepository
	Staff         repository.StaffRepository
	Attendance    repository.AttendanceRepository
	Items         repository.InventoryItemRepository
	Movements     repository.InventoryMovementRepository
	Warehouses    repository.WarehouseRepository
	Suppliers     repository.SupplierRepository
	Customers     repository.CustomerRepository
	Notifications repository.NotificationRepository
	Payrolls      repository.PayrollRepository
	Tx            txRunner
	Ping          func(ctx context.Context) error
	Close         func()
}

// openStorage abre PostgreSQL (con migraciones) o el store en memoria según DB_DRIVER.
func openStorage(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*storage, error) {
	if cfg.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: los datos no se persisten")
		s := memory.NewStore()
		return &storage{
			Users:         memory.NewUserRepository(s),
			Staff:         memory.NewStaffRepository(s),
			Attendance:    memory.NewAttendanceRepository(s),
			Items:         memory.NewInventoryItemRepository(s),
			Movements:     memory.NewInventoryMovementRepository(s),
			Warehouses:    memory.NewWarehouseRepository(s),
			Suppliers:     memory.NewSupplierRepository(s),
			Customers:     memory.NewCustomerRepository(s),
			Notifications: memory.NewNotificationRepository(s),
			Payrolls:      memory.NewPayrollRepository(s),
			Tx:            memory.NewTxRunner(s),
			Ping:          s.Ping,
			Close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if err := postgres.Migrate(ctx, pool, log); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	return &storage{
		Users:         postgres.NewUserRepository(pool),
		Staff:         postgres.NewStaffRepository(pool),
		Attendance:    postgres.NewAttendanceRepository(pool),
		Items:         postgres.NewInventoryItemRepository(pool),
		Movements:     postgres.NewInventoryMovementRepository(pool),
		Warehouses:    postgres.NewWarehouseRepository(pool),
		Suppliers:     postgres.NewSupplierRepository(pool),
		Customers:     postgres.NewCustomerRepository(pool),
		Notifications: postgres.NewNotificationRepository(pool),
		Payrolls:      postgres.NewPayrollRepository(pool),
		Tx:            postgres.NewTxRunner(pool),
		Ping:          pool.Ping,
		Close:         pool.Close,
	}, nil
}
