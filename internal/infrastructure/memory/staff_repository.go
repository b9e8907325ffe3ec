package memory

import (
	"context"
	"sort"

	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

// StaffRepo staff en memoria.
type StaffRepo struct {
	s  *Store
	tx bool
}

// NewStaffRepository construye el repositorio.
func NewStaffRepository(s *Store) *StaffRepo { return &StaffRepo{s: s} }

// Create persiste un staff; staff_code único.
func (r *StaffRepo) Create(_ context.Context, staff *entity.Staff) error {
	defer r.s.lock(r.tx)()
	for _, st := range r.s.staff {
		if st.StaffCode == staff.StaffCode {
			return domain.ErrDuplicate
		}
	}
	if r.tx {
		remember(r.s, r.s.staff, staff.ID)
	}
	r.s.staff[staff.ID] = *staff
	return nil
}

// GetByID obtiene un staff o (nil, nil).
func (r *StaffRepo) GetByID(_ context.Context, id string) (*entity.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.staff[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

// GetForUpdate en memoria la exclusión la da el TxRunner.
func (r *StaffRepo) GetForUpdate(ctx context.Context, id string) (*entity.Staff, error) {
	return r.GetByID(ctx, id)
}

// List staff ordenado por nombre.
func (r *StaffRepo) List(_ context.Context, limit, offset int) ([]*entity.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Staff, 0, len(r.s.staff))
	for _, st := range r.s.staff {
		st := st
		out = append(out, &st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return page(out, limit, offset), nil
}
