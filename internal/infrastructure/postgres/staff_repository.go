package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

const staffColumns = `id, staff_code, name, email, phone, gender, date_of_birth, department, role,
	appointment_type, bank_name, account_number, address, hourly_rate, created_at, updated_at`

// StaffRepo implementación de StaffRepository sobre PostgreSQL (usable con pool o tx).
type StaffRepo struct {
	q Querier
}

// NewStaffRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

// Create persiste un staff. staff_code duplicado -> ErrDuplicate.
func (r *StaffRepo) Create(ctx context.Context, s *entity.Staff) error {
	query := `
		INSERT INTO staff (` + staffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.StaffCode, s.Name, nullString(s.Email), nullString(s.Phone), nullString(s.Gender),
		s.DateOfBirth, nullString(s.Department), nullString(s.Role), nullString(s.AppointmentType),
		nullString(s.BankName), nullString(s.AccountNumber), nullString(s.Address), s.HourlyRate,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: staff_code %s", domain.ErrDuplicate, s.StaffCode)
		}
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

// GetByID obtiene un staff por ID.
func (r *StaffRepo) GetByID(ctx context.Context, id string) (*entity.Staff, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)
}

// GetForUpdate obtiene el staff y bloquea la fila (SELECT FOR UPDATE). Usar dentro de tx.
func (r *StaffRepo) GetForUpdate(ctx context.Context, id string) (*entity.Staff, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1 FOR UPDATE`, id)
}

// List staff ordenado por nombre.
func (r *StaffRepo) List(ctx context.Context, limit, offset int) ([]*entity.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY name, id LIMIT NULLIF($1, 0) OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()
	var list []*entity.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *StaffRepo) getOne(ctx context.Context, query, id string) (*entity.Staff, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanStaff(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return s, nil
}

func scanStaff(row pgx.Row) (*entity.Staff, error) {
	var s entity.Staff
	var email, phone, gender, dept, role, appt, bank, account, address *string
	err := row.Scan(
		&s.ID, &s.StaffCode, &s.Name, &email, &phone, &gender, &s.DateOfBirth, &dept, &role,
		&appt, &bank, &account, &address, &s.HourlyRate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Email = derefString(email)
	s.Phone = derefString(phone)
	s.Gender = derefString(gender)
	s.Department = derefString(dept)
	s.Role = derefString(role)
	s.AppointmentType = derefString(appt)
	s.BankName = derefString(bank)
	s.AccountNumber = derefString(account)
	s.Address = derefString(address)
	return &s, nil
}
