package memory

import (
	"context"
	"sort"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

// PayrollRepo liquidaciones en memoria.
type PayrollRepo struct {
	s  *Store
	tx bool
}

// NewPayrollRepository construye el repositorio.
func NewPayrollRepository(s *Store) *PayrollRepo { return &PayrollRepo{s: s} }

// Upsert reemplaza la liquidación de (staff, período) conservando su ID y fecha de creación.
func (r *PayrollRepo) Upsert(_ context.Context, p *entity.Payroll) error {
	defer r.s.lock(r.tx)()
	for id, existing := range r.s.payrolls {
		if existing.StaffID == p.StaffID && existing.PeriodStart.Equal(p.PeriodStart) && existing.PeriodEnd.Equal(p.PeriodEnd) {
			p.ID = id
			p.CreatedAt = existing.CreatedAt
			break
		}
	}
	stored := *p
	stored.StaffName = ""
	r.s.payrolls[p.ID] = stored
	return nil
}

// GetByID obtiene una liquidación o (nil, nil).
func (r *PayrollRepo) GetByID(_ context.Context, id string) (*entity.Payroll, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.payrolls[id]
	if !ok {
		return nil, nil
	}
	p.StaffName = r.s.staff[p.StaffID].Name
	return &p, nil
}

// ListByPeriod liquidaciones del período exacto, por nombre de staff.
func (r *PayrollRepo) ListByPeriod(_ context.Context, start, end time.Time) ([]*entity.Payroll, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Payroll
	for _, p := range r.s.payrolls {
		if !p.PeriodStart.Equal(start) || !p.PeriodEnd.Equal(end) {
			continue
		}
		p := p
		p.StaffName = r.s.staff[p.StaffID].Name
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StaffName < out[j].StaffName })
	return out, nil
}
