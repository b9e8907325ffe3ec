package attendance_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrobsm/ivanstamas-api/internal/application/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/domain"
	domatt "github.com/astrobsm/ivanstamas-api/internal/domain/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/lock"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/memory"
)

var lagos = mustLocation("Africa/Lagos")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// clock reloj manipulable desde el test.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// noopLocker no serializa nada; deja la garantía en manos de la transacción y del repositorio.
type noopLocker struct{}

func (noopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

type fixture struct {
	store    *memory.Store
	recorder *attendance.Recorder
	clock    *clock
	staff    *entity.Staff
}

func newFixture(t *testing.T, locker attendance.StaffLocker) *fixture {
	t.Helper()
	store := memory.NewStore()
	policy, err := domatt.NewPolicy("Africa/Lagos", "09:00", 8)
	require.NoError(t, err)

	staff := &entity.Staff{
		ID:         uuid.New().String(),
		StaffCode:  "AST-0001",
		Name:       "Ada Obi",
		HourlyRate: decimal.NewFromInt(1500),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, memory.NewStaffRepository(store).Create(context.Background(), staff))

	clk := &clock{now: time.Date(2024, 3, 4, 8, 0, 0, 0, lagos)}
	rec := attendance.NewRecorder(memory.NewTxRunner(store), locker, policy, zerolog.Nop()).WithClock(clk.Now)
	return &fixture{store: store, recorder: rec, clock: clk, staff: staff}
}

func (f *fixture) records(t *testing.T) []*entity.AttendanceRecord {
	t.Helper()
	list, err := memory.NewAttendanceRepository(f.store).ListByStaff(context.Background(), f.staff.ID, 0)
	require.NoError(t, err)
	return list
}

func TestRecord_ClockInThenOut(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	ctx := context.Background()

	rec, msg, err := f.recorder.Record(ctx, attendance.RecordInput{StaffID: f.staff.ID, Action: "in"})
	require.NoError(t, err)
	assert.Equal(t, "Clock-in recorded for Ada Obi", msg)
	assert.Equal(t, entity.AttendanceActionIn, rec.Action)
	assert.Equal(t, entity.AttendanceStatusPresent, rec.Status)
	assert.Equal(t, entity.AuthMethodManual, rec.AuthMethod)
	assert.Nil(t, rec.TimeOut)
	assert.Nil(t, rec.HoursWorked)
	assert.Equal(t, "2024-03-04", rec.Date.Format("2006-01-02"))

	f.clock.Set(time.Date(2024, 3, 4, 17, 30, 0, 0, lagos))
	out, msg, err := f.recorder.Record(ctx, attendance.RecordInput{StaffID: f.staff.ID, Action: "OUT"})
	require.NoError(t, err)
	assert.Equal(t, "Clock-out recorded for Ada Obi (9.50 hours)", msg)
	assert.Equal(t, rec.ID, out.ID, "la salida cierra la misma jornada")
	require.NotNil(t, out.HoursWorked)
	assert.InDelta(t, 9.5, *out.HoursWorked, 1e-9)
	assert.InDelta(t, 1.5, out.OvertimeHours, 1e-9)
	assert.Equal(t, entity.AttendanceStatusOvertime, out.Status)
	assert.Equal(t, entity.AttendanceActionOut, out.Action)

	list := f.records(t)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsOpen())
}

func TestRecord_HoursEqualTimeDifference(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	ctx := context.Background()
	start := time.Date(2024, 3, 5, 8, 15, 0, 0, lagos)
	f.clock.Set(start)
	_, _, err := f.recorder.Record(ctx, attendance.RecordInput{StaffID: f.staff.ID, Action: "IN"})
	require.NoError(t, err)

	end := start.Add(3*time.Hour + 20*time.Minute)
	f.clock.Set(end)
	out, _, err := f.recorder.Record(ctx, attendance.RecordInput{StaffID: f.staff.ID, Action: "OUT"})
	require.NoError(t, err)
	require.NotNil(t, out.HoursWorked)
	assert.InDelta(t, end.Sub(start).Hours(), *out.HoursWorked, 1e-9)
	assert.GreaterOrEqual(t, *out.HoursWorked, 0.0)
	assert.Equal(t, entity.AttendanceStatusPresent, out.Status)
	assert.Zero(t, out.OvertimeHours)
}

func TestRecord_LateArrival(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	f.clock.Set(time.Date(2024, 3, 4, 9, 30, 0, 0, lagos))
	rec, _, err := f.recorder.Record(context.Background(), attendance.RecordInput{StaffID: f.staff.ID, Action: "IN"})
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceStatusLate, rec.Status)
}

func TestRecord_DoubleClockInRejected(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	ctx := context.Background()
	_, _, err := f.recorder.Record(ctx, attendance.RecordInput{StaffID: f.staff.ID, Action: "IN"})
	require.NoError(t, err)

	f.clock.Set(f.clock.Now().Add(time.Hour))
	_, _, err = f.recorder.Record(ctx, attendance.RecordInput{StaffID: f.staff.ID, Action: "IN"})
	assert.ErrorIs(t, err, domain.ErrAlreadyClockedIn)
	assert.Len(t, f.records(t), 1)
}

func TestRecord_ClockOutWithoutClockIn(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	_, _, err := f.recorder.Record(context.Background(), attendance.RecordInput{StaffID: f.staff.ID, Action: "OUT"})
	assert.ErrorIs(t, err, domain.ErrNoOpenAttendance)
	assert.Empty(t, f.records(t), "no debe crearse ninguna jornada")
}

func TestRecord_ClockOutBeforeClockInIsRejected(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	ctx := context.Background()
	_, _, err := f.recorder.Record(ctx, attendance.RecordInput{StaffID: f.staff.ID, Action: "IN"})
	require.NoError(t, err)

	f.clock.Set(f.clock.Now().Add(-time.Minute))
	_, _, err = f.recorder.Record(ctx, attendance.RecordInput{StaffID: f.staff.ID, Action: "OUT"})
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)

	list := f.records(t)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsOpen(), "la jornada sigue abierta tras el rechazo")
}

func TestRecord_InvalidInput(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	ctx := context.Background()
	bad := 1.5
	cases := map[string]attendance.RecordInput{
		"sin staff":       {Action: "IN"},
		"accion invalida": {StaffID: f.staff.ID, Action: "BREAK"},
		"auth_method":     {StaffID: f.staff.ID, Action: "IN", AuthMethod: "sms"},
		"confianza":       {StaffID: f.staff.ID, Action: "IN", VerificationConfidence: &bad},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := f.recorder.Record(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, f.records(t))
}

func TestRecord_UnknownStaff(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	_, _, err := f.recorder.Record(context.Background(), attendance.RecordInput{StaffID: uuid.New().String(), Action: "IN"})
	assert.ErrorIs(t, err, domain.ErrStaffNotFound)
}

func TestRecord_FingerprintDataIsKept(t *testing.T) {
	f := newFixture(t, lock.NewKeyedMutex())
	conf := 0.97
	rec, _, err := f.recorder.Record(context.Background(), attendance.RecordInput{
		StaffID:                f.staff.ID,
		Action:                 "IN",
		AuthMethod:             entity.AuthMethodFingerprint,
		FingerprintVerified:    true,
		VerificationConfidence: &conf,
		DeviceInfo:             "scanner-01",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AuthMethodFingerprint, rec.AuthMethod)
	assert.True(t, rec.FingerprintVerified)
	require.NotNil(t, rec.VerificationConfidence)
	assert.InDelta(t, 0.97, *rec.VerificationConfidence, 1e-9)
	assert.Equal(t, "scanner-01", rec.DeviceInfo)
}

func TestRecord_ConcurrentClockInCreatesOneOpenRecord(t *testing.T) {
	lockers := map[string]attendance.StaffLocker{
		"keyed mutex": lock.NewKeyedMutex(),
		"sin locker":  noopLocker{},
	}
	for name, locker := range lockers {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, locker)
			const workers = 16

			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				succeeded int
				conflicts int
			)
			start := make(chan struct{})
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					<-start
					_, _, err := f.recorder.Record(context.Background(), attendance.RecordInput{StaffID: f.staff.ID, Action: "IN"})
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						succeeded++
					case assert.ErrorIs(t, err, domain.ErrAlreadyClockedIn):
						conflicts++
					}
				}()
			}
			close(start)
			wg.Wait()

			assert.Equal(t, 1, succeeded)
			assert.Equal(t, workers-1, conflicts)
			open := 0
			for _, r := range f.records(t) {
				if r.IsOpen() {
					open++
				}
			}
			assert.Equal(t, 1, open)
		})
	}
}

func TestRecord_LockTimeoutIsBusy(t *testing.T) {
	locker := lock.NewKeyedMutex()
	f := newFixture(t, locker)

	unlock, err := locker.Lock(context.Background(), f.staff.ID)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, _, err = f.recorder.Record(ctx, attendance.RecordInput{StaffID: f.staff.ID, Action: "IN"})
	assert.ErrorIs(t, err, domain.ErrBusy)
	assert.Empty(t, f.records(t))
}
