// Package attendance contiene las reglas puras de la jornada: fecha laboral,
// puntualidad, horas trabajadas y horas extra.
package attendance

import (
	"fmt"
	"time"
	_ "time/tzdata" // imágenes sin zoneinfo

	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
)

// Policy reglas de jornada configurables.
type Policy struct {
	Location      *time.Location
	WorkStart     time.Duration // desde medianoche local
	StandardHours float64
}

// NewPolicy construye la política desde la configuración (zona IANA, "HH:MM", horas estándar).
func NewPolicy(timezone, workStart string, standardHours float64) (Policy, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Policy{}, fmt.Errorf("%w: zona horaria %q: %v", domain.ErrInvalidInput, timezone, err)
	}
	start, err := time.Parse("15:04", workStart)
	if err != nil {
		return Policy{}, fmt.Errorf("%w: hora de inicio %q (HH:MM)", domain.ErrInvalidInput, workStart)
	}
	if standardHours <= 0 {
		return Policy{}, fmt.Errorf("%w: horas estándar deben ser > 0", domain.ErrInvalidInput)
	}
	return Policy{
		Location:      loc,
		WorkStart:     time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute,
		StandardHours: standardHours,
	}, nil
}

// WorkDate fecha laboral de t en la zona de la política, como medianoche UTC (columna DATE).
func (p Policy) WorkDate(t time.Time) time.Time {
	y, m, d := t.In(p.Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClockInStatus LATE si la entrada es posterior al inicio de jornada local, si no PRESENT.
func (p Policy) ClockInStatus(t time.Time) string {
	local := t.In(p.Location)
	y, m, d := local.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, p.Location).Add(p.WorkStart)
	if local.After(start) {
		return entity.AttendanceStatusLate
	}
	return entity.AttendanceStatusPresent
}

// Overtime horas por encima de la jornada estándar (nunca negativo).
func (p Policy) Overtime(hours float64) float64 {
	if over := hours - p.StandardHours; over > 0 {
		return over
	}
	return 0
}

// HoursBetween horas entre entrada y salida. Salida anterior a entrada es error.
func HoursBetween(timeIn, timeOut time.Time) (float64, error) {
	if timeOut.Before(timeIn) {
		return 0, domain.ErrInvalidTimeRange
	}
	return timeOut.Sub(timeIn).Hours(), nil
}

// ClockOut cierra la jornada abierta rec en now: fija salida, horas, extra y estado.
func (p Policy) ClockOut(rec *entity.AttendanceRecord, now time.Time) error {
	if !rec.IsOpen() {
		return domain.ErrNoOpenAttendance
	}
	hours, err := HoursBetween(*rec.TimeIn, now)
	if err != nil {
		return err
	}
	out := now
	rec.TimeOut = &out
	rec.HoursWorked = &hours
	rec.OvertimeHours = p.Overtime(hours)
	rec.Action = entity.AttendanceActionOut
	if rec.OvertimeHours > 0 {
		rec.Status = entity.AttendanceStatusOvertime
	}
	rec.UpdatedAt = now
	return nil
}
