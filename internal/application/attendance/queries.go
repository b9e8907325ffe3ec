package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
)

// historyLimit máximo de jornadas devueltas por staff.
const historyLimit = 500

// exportLimit máximo de filas en una exportación.
const exportLimit = 10000

// QueryUseCase consultas y exportación de asistencia.
type QueryUseCase struct {
	staffRepo      repository.StaffRepository
	attendanceRepo repository.AttendanceRepository
	exporter       ReportExporter
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(staffRepo repository.StaffRepository, attendanceRepo repository.AttendanceRepository, exporter ReportExporter) *QueryUseCase {
	return &QueryUseCase{staffRepo: staffRepo, attendanceRepo: attendanceRepo, exporter: exporter}
}

// ListByStaff jornadas del staff, más recientes primero.
func (uc *QueryUseCase) ListByStaff(ctx context.Context, staffID string) ([]dto.AttendanceResponse, error) {
	staff, err := uc.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, domain.ErrStaffNotFound
	}
	list, err := uc.attendanceRepo.ListByStaff(ctx, staffID, historyLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttendanceResponse, 0, len(list))
	for _, rec := range list {
		rec.StaffName = staff.Name
		out = append(out, ToAttendanceResponse(rec))
	}
	return out, nil
}

// List jornadas filtradas con nombre del staff.
func (uc *QueryUseCase) List(ctx context.Context, in dto.AttendanceListRequest) (*dto.AttendanceListResponse, error) {
	in.DefaultPage()
	filter, err := toFilter(in)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AttendanceResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, ToAttendanceResponse(rec))
	}
	return &dto.AttendanceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// HoursWorked total de horas de jornadas cerradas con fecha en [from, to].
func (uc *QueryUseCase) HoursWorked(ctx context.Context, staffID string, from, to time.Time) (*dto.HoursWorkedResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: el inicio del período es posterior al fin", domain.ErrInvalidInput)
	}
	staff, err := uc.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, domain.ErrStaffNotFound
	}
	hours, err := uc.attendanceRepo.SumHours(ctx, staffID, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.HoursWorkedResponse{
		StaffID:     staffID,
		From:        from.Format(dto.DateLayout),
		To:          to.Format(dto.DateLayout),
		HoursWorked: hours,
	}, nil
}

// Export genera el XLSX de las jornadas filtradas (sin paginar).
func (uc *QueryUseCase) Export(ctx context.Context, in dto.AttendanceListRequest) ([]byte, error) {
	filter, err := toFilter(in)
	if err != nil {
		return nil, err
	}
	filter.Limit = exportLimit
	filter.Offset = 0
	list, _, err := uc.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.AttendanceResponse, 0, len(list))
	for _, rec := range list {
		rows = append(rows, ToAttendanceResponse(rec))
	}
	return uc.exporter.AttendanceWorkbook(rows)
}

// ParsePeriod parsea "YYYY-MM-DD:YYYY-MM-DD".
func ParsePeriod(raw string) (time.Time, time.Time, error) {
	start, end, ok := strings.Cut(raw, ":")
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: formato de duración 'YYYY-MM-DD:YYYY-MM-DD'", domain.ErrInvalidInput)
	}
	from, err := time.Parse(dto.DateLayout, strings.TrimSpace(start))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha inicial %q", domain.ErrInvalidInput, start)
	}
	to, err := time.Parse(dto.DateLayout, strings.TrimSpace(end))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha final %q", domain.ErrInvalidInput, end)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: el inicio del período es posterior al fin", domain.ErrInvalidInput)
	}
	return from, to, nil
}

func toFilter(in dto.AttendanceListRequest) (entity.AttendanceFilter, error) {
	f := entity.AttendanceFilter{
		StaffID: strings.TrimSpace(in.StaffID),
		Status:  strings.ToUpper(in.Status),
		Limit:   in.Limit,
		Offset:  in.Offset,
	}
	if in.From != "" {
		t, err := time.Parse(dto.DateLayout, in.From)
		if err != nil {
			return f, fmt.Errorf("%w: from", domain.ErrInvalidInput)
		}
		f.From = &t
	}
	if in.To != "" {
		t, err := time.Parse(dto.DateLayout, in.To)
		if err != nil {
			return f, fmt.Errorf("%w: to", domain.ErrInvalidInput)
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
	}
	return f, nil
}

// ToAttendanceResponse mapea la jornada a su DTO.
func ToAttendanceResponse(r *entity.AttendanceRecord) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:                     r.ID,
		StaffID:                r.StaffID,
		StaffName:              r.StaffName,
		Date:                   r.Date.Format(dto.DateLayout),
		TimeIn:                 r.TimeIn,
		TimeOut:                r.TimeOut,
		HoursWorked:            r.HoursWorked,
		OvertimeHours:          r.OvertimeHours,
		Action:                 r.Action,
		Status:                 r.Status,
		AuthMethod:             r.AuthMethod,
		FingerprintVerified:    r.FingerprintVerified,
		VerificationConfidence: r.VerificationConfidence,
		DeviceInfo:             r.DeviceInfo,
	}
}
