package memory

import (
	"context"
	"sort"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

// AttendanceRepo jornadas en memoria.
type AttendanceRepo struct {
	s  *Store
	tx bool
}

// NewAttendanceRepository construye el repositorio.
func NewAttendanceRepository(s *Store) *AttendanceRepo { return &AttendanceRepo{s: s} }

// Create persiste la jornada. Como el índice parcial en PostgreSQL, admite una sola abierta por staff.
func (r *AttendanceRepo) Create(_ context.Context, rec *entity.AttendanceRecord) error {
	defer r.s.lock(r.tx)()
	if rec.IsOpen() {
		for _, existing := range r.s.attendance {
			if existing.StaffID == rec.StaffID && existing.IsOpen() {
				return domain.ErrAlreadyClockedIn
			}
		}
	}
	stored := *rec
	stored.StaffName = ""
	r.keep(rec.ID)
	r.s.attendance[rec.ID] = stored
	return nil
}

// Update reemplaza la jornada.
func (r *AttendanceRepo) Update(_ context.Context, rec *entity.AttendanceRecord) error {
	defer r.s.lock(r.tx)()
	if _, ok := r.s.attendance[rec.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *rec
	stored.StaffName = ""
	r.keep(rec.ID)
	r.s.attendance[rec.ID] = stored
	return nil
}

func (r *AttendanceRepo) keep(id string) {
	if r.tx {
		remember(r.s, r.s.attendance, id)
	}
}

// GetOpenByStaff jornada abierta más reciente o (nil, nil).
func (r *AttendanceRepo) GetOpenByStaff(_ context.Context, staffID string) (*entity.AttendanceRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var open *entity.AttendanceRecord
	for _, rec := range r.s.attendance {
		if rec.StaffID != staffID || !rec.IsOpen() {
			continue
		}
		if open == nil || rec.TimeIn.After(*open.TimeIn) {
			rec := rec
			open = &rec
		}
	}
	return open, nil
}

// ListByStaff jornadas del staff, más recientes primero.
func (r *AttendanceRepo) ListByStaff(ctx context.Context, staffID string, limit int) ([]*entity.AttendanceRecord, error) {
	list, _, err := r.List(ctx, entity.AttendanceFilter{StaffID: staffID, Limit: limit})
	return list, err
}

// List jornadas filtradas, más recientes primero, con nombre del staff.
func (r *AttendanceRepo) List(_ context.Context, f entity.AttendanceFilter) ([]*entity.AttendanceRecord, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.AttendanceRecord
	for _, rec := range r.s.attendance {
		if !matches(rec, f) {
			continue
		}
		rec := rec
		if st, ok := r.s.staff[rec.StaffID]; ok {
			rec.StaffName = st.Name
		}
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return page(out, f.Limit, f.Offset), int64(len(out)), nil
}

// SumHours suma horas de jornadas cerradas con fecha en [from, to].
func (r *AttendanceRepo) SumHours(_ context.Context, staffID string, from, to time.Time) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var total float64
	for _, rec := range r.s.attendance {
		if rec.StaffID != staffID || rec.HoursWorked == nil {
			continue
		}
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		total += *rec.HoursWorked
	}
	return total, nil
}

func matches(rec entity.AttendanceRecord, f entity.AttendanceFilter) bool {
	if f.StaffID != "" && rec.StaffID != f.StaffID {
		return false
	}
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	if f.From != nil && rec.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && rec.Date.After(*f.To) {
		return false
	}
	return true
}
