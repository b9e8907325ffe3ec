package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)
var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryItemRepo ítems en memoria.
type InventoryItemRepo struct {
	s  *Store
	tx bool
}

// NewInventoryItemRepository construye el repositorio.
func NewInventoryItemRepository(s *Store) *InventoryItemRepo { return &InventoryItemRepo{s: s} }

// Create persiste un ítem; SKU único por bodega.
func (r *InventoryItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	defer r.s.lock(r.tx)()
	for _, it := range r.s.items {
		if it.SKU == item.SKU && it.WarehouseID == item.WarehouseID {
			return domain.ErrDuplicate
		}
	}
	r.keep(item.ID)
	r.s.items[item.ID] = *item
	return nil
}

// GetByID obtiene un ítem o (nil, nil).
func (r *InventoryItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// GetForUpdate en memoria la exclusión la da el TxRunner.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

// UpdateQuantity fija la cantidad del ítem.
func (r *InventoryItemRepo) UpdateQuantity(_ context.Context, id string, quantity int64) error {
	defer r.s.lock(r.tx)()
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.UpdatedAt = time.Now()
	r.keep(id)
	r.s.items[id] = it
	return nil
}

func (r *InventoryItemRepo) keep(id string) {
	if r.tx {
		remember(r.s, r.s.items, id)
	}
}

// List ítems por nombre.
func (r *InventoryItemRepo) List(_ context.Context, f entity.InventoryFilter) ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(f.Search)
	out := make([]*entity.InventoryItem, 0, len(r.s.items))
	for _, it := range r.s.items {
		if f.WarehouseID != "" && it.WarehouseID != f.WarehouseID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) && !strings.Contains(strings.ToLower(it.SKU), search) {
			continue
		}
		it := it
		out = append(out, &it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, f.Limit, f.Offset), nil
}

// ListBySKUForUpdate filas del SKU ordenadas por ID.
func (r *InventoryItemRepo) ListBySKUForUpdate(_ context.Context, sku string) ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.InventoryItem
	for _, it := range r.s.items {
		if it.SKU == sku {
			it := it
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// InventoryMovementRepo movimientos en memoria.
type InventoryMovementRepo struct {
	s  *Store
	tx bool
}

// NewInventoryMovementRepository construye el repositorio.
func NewInventoryMovementRepository(s *Store) *InventoryMovementRepo {
	return &InventoryMovementRepo{s: s}
}

// Create agrega el movimiento.
func (r *InventoryMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	defer r.s.lock(r.tx)()
	if r.tx {
		n := len(r.s.movements)
		r.s.undo = append(r.s.undo, func() { r.s.movements = r.s.movements[:n] })
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

// ListByItem movimientos del ítem, más recientes primero.
func (r *InventoryMovementRepo) ListByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.InventoryMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.ItemID == itemID {
			out = append(out, &m)
		}
	}
	return page(out, limit, offset), nil
}
