package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

const attendanceColumns = `a.id, a.staff_id, a.date, a.time_in, a.time_out, a.hours_worked, a.overtime_hours,
	a.action, a.status, a.auth_method, a.fingerprint_verified, a.verification_confidence, a.device_info,
	a.created_at, a.updated_at`

// índice parcial que garantiza una jornada abierta por staff
const openAttendanceIndex = "attendance_one_open_per_staff"

// AttendanceRepo implementación de AttendanceRepository sobre PostgreSQL (usable con pool o tx).
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

// Create persiste una jornada. Una segunda jornada abierta del mismo staff -> ErrAlreadyClockedIn.
func (r *AttendanceRepo) Create(ctx context.Context, rec *entity.AttendanceRecord) error {
	query := `
		INSERT INTO attendance (id, staff_id, date, time_in, time_out, hours_worked, overtime_hours,
			action, status, auth_method, fingerprint_verified, verification_confidence, device_info,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.StaffID, rec.Date, rec.TimeIn, rec.TimeOut, rec.HoursWorked, rec.OvertimeHours,
		rec.Action, rec.Status, rec.AuthMethod, rec.FingerprintVerified, rec.VerificationConfidence,
		nullString(rec.DeviceInfo), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) == openAttendanceIndex {
			return domain.ErrAlreadyClockedIn
		}
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// Update persiste salida, horas, estado y datos de verificación.
func (r *AttendanceRepo) Update(ctx context.Context, rec *entity.AttendanceRecord) error {
	query := `
		UPDATE attendance SET
			time_out = $2, hours_worked = $3, overtime_hours = $4, action = $5, status = $6,
			auth_method = $7, fingerprint_verified = $8, verification_confidence = $9,
			device_info = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		rec.ID, rec.TimeOut, rec.HoursWorked, rec.OvertimeHours, rec.Action, rec.Status,
		rec.AuthMethod, rec.FingerprintVerified, rec.VerificationConfidence,
		nullString(rec.DeviceInfo), rec.UpdatedAt,
	)
	if err != nil {
		if pgCode(err) == codeCheckViolation {
			return domain.ErrInvalidTimeRange
		}
		return fmt.Errorf("update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetOpenByStaff jornada abierta más reciente del staff.
func (r *AttendanceRepo) GetOpenByStaff(ctx context.Context, staffID string) (*entity.AttendanceRecord, error) {
	query := `
		SELECT ` + attendanceColumns + `, '' FROM attendance a
		WHERE a.staff_id = $1 AND a.time_in IS NOT NULL AND a.time_out IS NULL
		ORDER BY a.time_in DESC
		LIMIT 1`
	if !validID(staffID) {
		return nil, nil
	}
	rec, err := scanAttendance(r.q.QueryRow(ctx, query, staffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open attendance: %w", err)
	}
	return rec, nil
}

// ListByStaff jornadas del staff, más recientes primero.
func (r *AttendanceRepo) ListByStaff(ctx context.Context, staffID string, limit int) ([]*entity.AttendanceRecord, error) {
	list, _, err := r.List(ctx, entity.AttendanceFilter{StaffID: staffID, Limit: limit})
	return list, err
}

// List jornadas filtradas con nombre del staff y total sin paginar.
func (r *AttendanceRepo) List(ctx context.Context, f entity.AttendanceFilter) ([]*entity.AttendanceRecord, int64, error) {
	query := `
		SELECT ` + attendanceColumns + `, s.name, count(*) OVER ()
		FROM attendance a
		JOIN staff s ON s.id = a.staff_id
		WHERE ($1 = '' OR a.staff_id::text = $1)
		  AND ($2::date IS NULL OR a.date >= $2)
		  AND ($3::date IS NULL OR a.date <= $3)
		  AND ($4 = '' OR a.status = $4)
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT NULLIF($5, 0) OFFSET $6`
	rows, err := r.q.Query(ctx, query, f.StaffID, f.From, f.To, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.AttendanceRecord
		total int64
	)
	for rows.Next() {
		rec, err := scanAttendance(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan attendance: %w", err)
		}
		list = append(list, rec)
	}
	return list, total, rows.Err()
}

// SumHours suma horas de jornadas cerradas con fecha en [from, to].
func (r *AttendanceRepo) SumHours(ctx context.Context, staffID string, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(hours_worked), 0) FROM attendance
		WHERE staff_id = $1 AND hours_worked IS NOT NULL AND date BETWEEN $2 AND $3`
	var total float64
	if err := r.q.QueryRow(ctx, query, staffID, dateOnly(from), dateOnly(to)).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum hours: %w", err)
	}
	return total, nil
}

// scanAttendance lee las columnas de attendanceColumns más el nombre del staff y, opcionalmente, el total.
func scanAttendance(row pgx.Row, extra ...any) (*entity.AttendanceRecord, error) {
	var rec entity.AttendanceRecord
	var device *string
	dest := []any{
		&rec.ID, &rec.StaffID, &rec.Date, &rec.TimeIn, &rec.TimeOut, &rec.HoursWorked, &rec.OvertimeHours,
		&rec.Action, &rec.Status, &rec.AuthMethod, &rec.FingerprintVerified, &rec.VerificationConfidence, &device,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.StaffName,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	rec.DeviceInfo = derefString(device)
	return &rec, nil
}
