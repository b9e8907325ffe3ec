package attendance

import (
	"testing"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lagosPolicy(t *testing.T) Policy {
	t.Helper()
	p, err := NewPolicy("Africa/Lagos", "09:00", 8)
	require.NoError(t, err)
	return p
}

func TestNewPolicy_Invalid(t *testing.T) {
	_, err := NewPolicy("Mars/Olympus", "09:00", 8)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = NewPolicy("UTC", "9am", 8)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = NewPolicy("UTC", "09:00", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWorkDate_UsesPolicyZone(t *testing.T) {
	p := lagosPolicy(t)
	// 23:30 UTC es 00:30 del día siguiente en Lagos (UTC+1).
	ts := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), p.WorkDate(ts))
}

func TestClockInStatus(t *testing.T) {
	p := lagosPolicy(t)
	onTime := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC) // 09:00 Lagos
	late := time.Date(2024, 3, 11, 8, 1, 0, 0, time.UTC)   // 09:01 Lagos
	assert.Equal(t, entity.AttendanceStatusPresent, p.ClockInStatus(onTime))
	assert.Equal(t, entity.AttendanceStatusLate, p.ClockInStatus(late))
}

func TestHoursBetween(t *testing.T) {
	in := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)
	h, err := HoursBetween(in, in.Add(90*time.Minute))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, h, 1e-9)

	h, err = HoursBetween(in, in)
	require.NoError(t, err)
	assert.Zero(t, h)

	_, err = HoursBetween(in, in.Add(-time.Second))
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestClockOut(t *testing.T) {
	p := lagosPolicy(t)
	in := time.Date(2024, 3, 11, 7, 0, 0, 0, time.UTC)
	rec := &entity.AttendanceRecord{TimeIn: &in, Status: entity.AttendanceStatusPresent, Action: entity.AttendanceActionIn}

	require.NoError(t, p.ClockOut(rec, in.Add(10*time.Hour)))
	require.NotNil(t, rec.TimeOut)
	require.NotNil(t, rec.HoursWorked)
	assert.InDelta(t, 10.0, *rec.HoursWorked, 1e-9)
	assert.InDelta(t, 2.0, rec.OvertimeHours, 1e-9)
	assert.Equal(t, entity.AttendanceStatusOvertime, rec.Status)
	assert.Equal(t, entity.AttendanceActionOut, rec.Action)

	// ya cerrada
	assert.ErrorIs(t, p.ClockOut(rec, in.Add(11*time.Hour)), domain.ErrNoOpenAttendance)
}

func TestClockOut_KeepsStatusWithoutOvertime(t *testing.T) {
	p := lagosPolicy(t)
	in := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	rec := &entity.AttendanceRecord{TimeIn: &in, Status: entity.AttendanceStatusLate}
	require.NoError(t, p.ClockOut(rec, in.Add(4*time.Hour)))
	assert.Equal(t, entity.AttendanceStatusLate, rec.Status)
	assert.Zero(t, rec.OvertimeHours)
}

func TestClockOut_BeforeTimeIn(t *testing.T) {
	p := lagosPolicy(t)
	in := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	rec := &entity.AttendanceRecord{TimeIn: &in}
	assert.ErrorIs(t, p.ClockOut(rec, in.Add(-time.Minute)), domain.ErrInvalidTimeRange)
	assert.Nil(t, rec.TimeOut)
}
