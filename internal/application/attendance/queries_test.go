package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrobsm/ivanstamas-api/internal/application/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/lock"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/memory"
)

type captureExporter struct {
	rows []dto.AttendanceResponse
}

func (e *captureExporter) AttendanceWorkbook(rows []dto.AttendanceResponse) ([]byte, error) {
	e.rows = rows
	return []byte("xlsx"), nil
}

// workDay registra una jornada completa de in a out (hora de Lagos).
func (f *fixture) workDay(t *testing.T, in, out time.Time) {
	t.Helper()
	ctx := context.Background()
	f.clock.Set(in)
	_, _, err := f.recorder.Record(ctx, attendance.RecordInput{StaffID: f.staff.ID, Action: "IN"})
	require.NoError(t, err)
	f.clock.Set(out)
	_, _, err = f.recorder.Record(ctx, attendance.RecordInput{StaffID: f.staff.ID, Action: "OUT"})
	require.NoError(t, err)
}

func newQueries(f *fixture, exp attendance.ReportExporter) *attendance.QueryUseCase {
	return attendance.NewQueryUseCase(memory.NewStaffRepository(f.store), memory.NewAttendanceRepository(f.store), exp)
}

func TestHoursWorked_SumsClosedRecordsInPeriod(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	f.workDay(t, time.Date(2024, 3, 4, 8, 0, 0, 0, lagos), time.Date(2024, 3, 4, 16, 0, 0, 0, lagos))
	f.workDay(t, time.Date(2024, 3, 5, 8, 0, 0, 0, lagos), time.Date(2024, 3, 5, 12, 30, 0, 0, lagos))
	f.workDay(t, time.Date(2024, 3, 9, 8, 0, 0, 0, lagos), time.Date(2024, 3, 9, 10, 0, 0, 0, lagos))
	// jornada abierta: no suma
	f.clock.Set(time.Date(2024, 3, 6, 8, 0, 0, 0, lagos))
	_, _, err := f.recorder.Record(context.Background(), attendance.RecordInput{StaffID: f.staff.ID, Action: "IN"})
	require.NoError(t, err)

	q := newQueries(f, &captureExporter{})
	from, to, err := attendance.ParsePeriod("2024-03-04:2024-03-06")
	require.NoError(t, err)
	out, err := q.HoursWorked(context.Background(), f.staff.ID, from, to)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, out.HoursWorked, 1e-9)
	assert.Equal(t, "2024-03-04", out.From)
	assert.Equal(t, "2024-03-06", out.To)
}

func TestHoursWorked_UnknownStaff(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	q := newQueries(f, &captureExporter{})
	now := time.Now()
	_, err := q.HoursWorked(context.Background(), uuid.New().String(), now, now)
	assert.ErrorIs(t, err, domain.ErrStaffNotFound)
}

func TestParsePeriod(t *testing.T) {
	from, to, err := attendance.ParsePeriod("2024-01-01:2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), to)

	for _, raw := range []string{"", "2024-01-01", "2024-13-01:2024-01-31", "2024-02-01:2024-01-01"} {
		_, _, err := attendance.ParsePeriod(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, raw)
	}
}

func TestListByStaff_NewestFirstWithName(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	f.workDay(t, time.Date(2024, 3, 4, 8, 0, 0, 0, lagos), time.Date(2024, 3, 4, 16, 0, 0, 0, lagos))
	f.workDay(t, time.Date(2024, 3, 5, 8, 0, 0, 0, lagos), time.Date(2024, 3, 5, 16, 0, 0, 0, lagos))

	q := newQueries(f, &captureExporter{})
	list, err := q.ListByStaff(context.Background(), f.staff.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-03-05", list[0].Date)
	assert.Equal(t, "2024-03-04", list[1].Date)
	assert.Equal(t, "Ada Obi", list[0].StaffName)
	require.NotNil(t, list[0].HoursWorked)
	assert.InDelta(t, 8.0, *list[0].HoursWorked, 1e-9)

	_, err = q.ListByStaff(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrStaffNotFound)
}

func TestListAndExport_Filters(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	f.workDay(t, time.Date(2024, 3, 4, 8, 0, 0, 0, lagos), time.Date(2024, 3, 4, 16, 0, 0, 0, lagos))
	f.workDay(t, time.Date(2024, 3, 5, 9, 45, 0, 0, lagos), time.Date(2024, 3, 5, 16, 0, 0, 0, lagos))

	exp := &captureExporter{}
	q := newQueries(f, exp)

	out, err := q.List(context.Background(), dto.AttendanceListRequest{
		Status:      "late",
		PageRequest: dto.PageRequest{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "2024-03-05", out.Items[0].Date)
	assert.EqualValues(t, 1, out.Page.Total)

	_, err = q.List(context.Background(), dto.AttendanceListRequest{From: "2024-03-06", To: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	data, err := q.Export(context.Background(), dto.AttendanceListRequest{From: "2024-03-04", To: "2024-03-04"})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	require.Len(t, exp.rows, 1)
	assert.Equal(t, "Ada Obi", exp.rows[0].StaffName)
}
