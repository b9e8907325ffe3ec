package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/application/payroll"
	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/memory"
)

type fakePayslips struct {
	last *entity.Payroll
}

func (f *fakePayslips) GeneratePayslip(_ context.Context, p *entity.Payroll, _ *entity.Staff) ([]byte, error) {
	f.last = p
	return []byte("%PDF-"), nil
}

type fixture struct {
	uc         *payroll.UseCase
	staff      *memory.StaffRepo
	attendance *memory.AttendanceRepo
	payslips   *fakePayslips
}

func newFixture() *fixture {
	s := memory.NewStore()
	f := &fixture{
		staff:      memory.NewStaffRepository(s),
		attendance: memory.NewAttendanceRepository(s),
		payslips:   &fakePayslips{},
	}
	f.uc = payroll.NewUseCase(memory.NewPayrollRepository(s), f.staff, f.attendance, f.payslips, zerolog.Nop())
	return f
}

func (f *fixture) addStaff(t *testing.T, code, name, rate string) *entity.Staff {
	t.Helper()
	st := &entity.Staff{ID: uuid.NewString(), StaffCode: code, Name: name, HourlyRate: decimal.RequireFromString(rate)}
	require.NoError(t, f.staff.Create(context.Background(), st))
	return st
}

func (f *fixture) addDay(t *testing.T, staffID string, day time.Time, hours float64) {
	t.Helper()
	in := day.Add(8 * time.Hour)
	out := in.Add(time.Duration(hours * float64(time.Hour)))
	h := hours
	require.NoError(t, f.attendance.Create(context.Background(), &entity.AttendanceRecord{
		ID:          uuid.NewString(),
		StaffID:     staffID,
		Date:        day,
		TimeIn:      &in,
		TimeOut:     &out,
		HoursWorked: &h,
		Action:      entity.AttendanceActionOut,
		Status:      entity.AttendanceStatusPresent,
	}))
}

func day(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

func TestRun_SalaryFromHoursAndRate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ada := f.addStaff(t, "AST-0001", "Ada Obi", "1500")
	bola := f.addStaff(t, "AST-0002", "Bola Ade", "0")
	f.addDay(t, ada.ID, day(4), 8.5)
	f.addDay(t, ada.ID, day(5), 7.25)
	f.addDay(t, ada.ID, day(9), 9)
	f.addDay(t, bola.ID, day(4), 8)

	out, err := f.uc.Run(ctx, dto.RunPayrollRequest{PeriodStart: "2024-03-04", PeriodEnd: "2024-03-08"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, []string{bola.ID}, out.Skipped)

	p := out.Items[0]
	assert.Equal(t, ada.ID, p.StaffID)
	assert.True(t, p.HoursWorked.Equal(decimal.RequireFromString("15.75")), p.HoursWorked.String())
	assert.True(t, p.Salary.Equal(decimal.RequireFromString("23625")), p.Salary.String())
	assert.True(t, out.TotalSalary.Equal(p.Salary))
}

func TestRun_RepeatReplacesSamePeriod(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ada := f.addStaff(t, "AST-0001", "Ada Obi", "1000")
	f.addDay(t, ada.ID, day(4), 8)

	req := dto.RunPayrollRequest{PeriodStart: "2024-03-01", PeriodEnd: "2024-03-31"}
	first, err := f.uc.Run(ctx, req)
	require.NoError(t, err)

	f.addDay(t, ada.ID, day(5), 2)
	second, err := f.uc.Run(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.Items[0].ID, second.Items[0].ID)
	assert.True(t, second.Items[0].Salary.Equal(decimal.NewFromInt(10000)))

	list, err := f.uc.List(ctx, req.PeriodStart, req.PeriodEnd)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ada Obi", list[0].StaffName)
	assert.True(t, list[0].HoursWorked.Equal(decimal.NewFromInt(10)))
}

func TestRun_InvalidPeriod(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Run(context.Background(), dto.RunPayrollRequest{PeriodStart: "2024-03-31", PeriodEnd: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.List(context.Background(), "marzo", "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompute_RoundsToCents(t *testing.T) {
	st := &entity.Staff{ID: "s", Name: "Ada", HourlyRate: decimal.RequireFromString("1000.50")}
	p := payroll.Compute(st, day(1), day(31), 7.333333)
	assert.Equal(t, "7.33", p.HoursWorked.StringFixed(2))
	assert.Equal(t, "7333.67", p.Salary.StringFixed(2))
}

func TestPayslip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ada := f.addStaff(t, "AST-0001", "Ada Obi", "1200")
	f.addDay(t, ada.ID, day(4), 8)

	out, err := f.uc.Run(ctx, dto.RunPayrollRequest{PeriodStart: "2024-03-04", PeriodEnd: "2024-03-04"})
	require.NoError(t, err)

	pdf, err := f.uc.Payslip(ctx, out.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-"), pdf)
	require.NotNil(t, f.payslips.last)
	assert.Equal(t, "Ada Obi", f.payslips.last.StaffName)

	_, err = f.uc.Payslip(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
