package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

var errBoom = errors.New("boom")

func TestTxRunner_RollbackUndoesInventoryWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	items := NewInventoryItemRepository(s)
	movs := NewInventoryMovementRepository(s)
	require.NoError(t, items.Create(ctx, &entity.InventoryItem{ID: "a", SKU: "A", Quantity: 10}))
	require.NoError(t, movs.Create(ctx, &entity.InventoryMovement{ID: "m0", ItemID: "a", Delta: 10}))

	err := NewTxRunner(s).Run(ctx, func(itemRepo repository.InventoryItemRepository, movRepo repository.InventoryMovementRepository) error {
		require.NoError(t, itemRepo.UpdateQuantity(ctx, "a", 3))
		require.NoError(t, itemRepo.UpdateQuantity(ctx, "a", 1))
		require.NoError(t, itemRepo.Create(ctx, &entity.InventoryItem{ID: "b", SKU: "A", WarehouseID: "w2", Quantity: 9}))
		require.NoError(t, movRepo.Create(ctx, &entity.InventoryMovement{ID: "m1", ItemID: "a", Delta: -9}))
		require.NoError(t, movRepo.Create(ctx, &entity.InventoryMovement{ID: "m2", ItemID: "b", Delta: 9}))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	a, err := items.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 10, a.Quantity)
	b, err := items.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, b)
	list, err := movs.ListByItem(ctx, "a", 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "m0", list[0].ID)
	assert.Empty(t, s.undo)
}

func TestTxRunner_CommitKeepsWritesAndClearsUndo(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	items := NewInventoryItemRepository(s)
	require.NoError(t, items.Create(ctx, &entity.InventoryItem{ID: "a", SKU: "A", Quantity: 10}))

	runner := NewTxRunner(s)
	require.NoError(t, runner.Run(ctx, func(itemRepo repository.InventoryItemRepository, _ repository.InventoryMovementRepository) error {
		return itemRepo.UpdateQuantity(ctx, "a", 4)
	}))
	assert.Empty(t, s.undo)

	// una transacción fallida posterior no deshace la anterior
	require.ErrorIs(t, runner.Run(ctx, func(itemRepo repository.InventoryItemRepository, _ repository.InventoryMovementRepository) error {
		if err := itemRepo.UpdateQuantity(ctx, "a", 0); err != nil {
			return err
		}
		return errBoom
	}), errBoom)

	a, err := items.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 4, a.Quantity)
}

func TestTxRunner_RollbackUndoesAttendanceWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	att := NewAttendanceRepository(s)
	in := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	open := &entity.AttendanceRecord{ID: "r1", StaffID: "s1", Date: in, TimeIn: &in, Action: entity.AttendanceActionIn}
	require.NoError(t, att.Create(ctx, open))

	err := NewTxRunner(s).RunAttendance(ctx, func(staffRepo repository.StaffRepository, attRepo repository.AttendanceRepository) error {
		require.NoError(t, staffRepo.Create(ctx, &entity.Staff{ID: "s2", StaffCode: "AST-2", Name: "Bola"}))
		out := in.Add(8 * time.Hour)
		closed := *open
		closed.TimeOut = &out
		require.NoError(t, attRepo.Update(ctx, &closed))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	st, err := NewStaffRepository(s).GetByID(ctx, "s2")
	require.NoError(t, err)
	assert.Nil(t, st)
	got, err := att.GetOpenByStaff(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.TimeOut)
}
