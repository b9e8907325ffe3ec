// Package payroll liquida la nómina a partir de las horas de asistencia y la tarifa por hora.
package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// staffPageSize tamaño de página al recorrer el staff.
const staffPageSize = 200

// PayslipGenerator genera el comprobante de pago en PDF.
type PayslipGenerator interface {
	GeneratePayslip(ctx context.Context, p *entity.Payroll, staff *entity.Staff) ([]byte, error)
}

// UseCase casos de uso de nómina.
type UseCase struct {
	payrollRepo    repository.PayrollRepository
	staffRepo      repository.StaffRepository
	attendanceRepo repository.AttendanceRepository
	payslips       PayslipGenerator
	log            zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(payrollRepo repository.PayrollRepository, staffRepo repository.StaffRepository, attendanceRepo repository.AttendanceRepository, payslips PayslipGenerator, log zerolog.Logger) *UseCase {
	return &UseCase{payrollRepo: payrollRepo, staffRepo: staffRepo, attendanceRepo: attendanceRepo, payslips: payslips, log: log}
}

// Run liquida el período para todo el staff con tarifa: salary = horas * tarifa.
// Repetir la corrida reemplaza las filas del mismo (staff, período).
func (uc *UseCase) Run(ctx context.Context, in dto.RunPayrollRequest) (*dto.PayrollRunResponse, error) {
	start, end, err := parsePeriod(in.PeriodStart, in.PeriodEnd)
	if err != nil {
		return nil, err
	}
	out := &dto.PayrollRunResponse{
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		Items:       []dto.PayrollResponse{},
		TotalSalary: decimal.Zero,
	}
	for offset := 0; ; offset += staffPageSize {
		staff, err := uc.staffRepo.List(ctx, staffPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, s := range staff {
			if !s.HourlyRate.IsPositive() {
				out.Skipped = append(out.Skipped, s.ID)
				continue
			}
			hours, err := uc.attendanceRepo.SumHours(ctx, s.ID, start, end)
			if err != nil {
				return nil, err
			}
			p := Compute(s, start, end, hours)
			p.ID = uuid.New().String()
			if err := uc.payrollRepo.Upsert(ctx, p); err != nil {
				return nil, err
			}
			out.Items = append(out.Items, toResponse(p))
			out.TotalSalary = out.TotalSalary.Add(p.Salary)
		}
		if len(staff) < staffPageSize {
			break
		}
	}
	uc.log.Info().
		Str("period_start", in.PeriodStart).
		Str("period_end", in.PeriodEnd).
		Int("liquidados", len(out.Items)).
		Int("omitidos", len(out.Skipped)).
		Str("total", out.TotalSalary.StringFixed(2)).
		Msg("nómina liquidada")
	return out, nil
}

// Compute construye la liquidación: horas redondeadas a 2 decimales, salario a 2 decimales.
func Compute(s *entity.Staff, start, end time.Time, hours float64) *entity.Payroll {
	h := decimal.NewFromFloat(hours).Round(2)
	now := time.Now()
	return &entity.Payroll{
		StaffID:     s.ID,
		StaffName:   s.Name,
		PeriodStart: start,
		PeriodEnd:   end,
		HoursWorked: h,
		HourlyRate:  s.HourlyRate,
		Salary:      h.Mul(s.HourlyRate).Round(2),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// List liquidaciones del período.
func (uc *UseCase) List(ctx context.Context, periodStart, periodEnd string) ([]dto.PayrollResponse, error) {
	start, end, err := parsePeriod(periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	list, err := uc.payrollRepo.ListByPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PayrollResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toResponse(p))
	}
	return out, nil
}

// Payslip genera el PDF de una liquidación.
func (uc *UseCase) Payslip(ctx context.Context, id string) ([]byte, error) {
	p, err := uc.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	staff, err := uc.staffRepo.GetByID(ctx, p.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, domain.ErrStaffNotFound
	}
	return uc.payslips.GeneratePayslip(ctx, p, staff)
}

func parsePeriod(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse(dto.DateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: period_start", domain.ErrInvalidInput)
	}
	end, err := time.Parse(dto.DateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: period_end", domain.ErrInvalidInput)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: period_end anterior a period_start", domain.ErrInvalidInput)
	}
	return start, end, nil
}

func toResponse(p *entity.Payroll) dto.PayrollResponse {
	return dto.PayrollResponse{
		ID:          p.ID,
		StaffID:     p.StaffID,
		StaffName:   p.StaffName,
		PeriodStart: p.PeriodStart.Format(dto.DateLayout),
		PeriodEnd:   p.PeriodEnd.Format(dto.DateLayout),
		HoursWorked: p.HoursWorked,
		HourlyRate:  p.HourlyRate,
		Salary:      p.Salary,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
