package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

const payrollSelect = `
	SELECT p.id, p.staff_id, s.name, p.period_start, p.period_end, p.hours_worked, p.hourly_rate,
		p.salary, p.created_at, p.updated_at
	FROM payrolls p
	JOIN staff s ON s.id = p.staff_id`

// PayrollRepo implementación sobre PostgreSQL.
type PayrollRepo struct {
	q Querier
}

// NewPayrollRepository construye el adaptador.
func NewPayrollRepository(q Querier) *PayrollRepo {
	return &PayrollRepo{q: q}
}

// Upsert inserta la liquidación o reemplaza la existente del mismo staff y período.
// Conserva id y created_at de la fila existente.
func (r *PayrollRepo) Upsert(ctx context.Context, p *entity.Payroll) error {
	query := `
		INSERT INTO payrolls (id, staff_id, period_start, period_end, hours_worked, hourly_rate, salary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (staff_id, period_start, period_end) DO UPDATE SET
			hours_worked = EXCLUDED.hours_worked,
			hourly_rate = EXCLUDED.hourly_rate,
			salary = EXCLUDED.salary,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.StaffID, dateOnly(p.PeriodStart), dateOnly(p.PeriodEnd), p.HoursWorked, p.HourlyRate,
		p.Salary, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert payroll: %w", err)
	}
	return nil
}

// GetByID obtiene una liquidación con el nombre del staff.
func (r *PayrollRepo) GetByID(ctx context.Context, id string) (*entity.Payroll, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanPayroll(r.q.QueryRow(ctx, payrollSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payroll: %w", err)
	}
	return p, nil
}

// ListByPeriod liquidaciones del período exacto, por nombre de staff.
func (r *PayrollRepo) ListByPeriod(ctx context.Context, start, end time.Time) ([]*entity.Payroll, error) {
	rows, err := r.q.Query(ctx, payrollSelect+`
		WHERE p.period_start = $1 AND p.period_end = $2
		ORDER BY s.name, p.id`, dateOnly(start), dateOnly(end))
	if err != nil {
		return nil, fmt.Errorf("list payrolls: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payroll: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPayroll(row pgx.Row) (*entity.Payroll, error) {
	var p entity.Payroll
	err := row.Scan(&p.ID, &p.StaffID, &p.StaffName, &p.PeriodStart, &p.PeriodEnd, &p.HoursWorked,
		&p.HourlyRate, &p.Salary, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
