package entity

import "time"

// Acciones de marcación.
const (
	AttendanceActionIn  = "IN"
	AttendanceActionOut = "OUT"
)

// Estados de la jornada.
const (
	AttendanceStatusPresent  = "PRESENT"
	AttendanceStatusLate     = "LATE"
	AttendanceStatusOvertime = "OVERTIME"
)

// Métodos de autenticación con que se marcó.
const (
	AuthMethodManual      = "manual"
	AuthMethodFingerprint = "fingerprint"
	AuthMethodWebAuthn    = "webauthn"
)

// AttendanceRecord es una jornada: entrada, salida y horas trabajadas.
// HoursWorked es nil hasta que TimeIn y TimeOut estén presentes; TimeOut >= TimeIn.
type AttendanceRecord struct {
	ID                     string
	StaffID                string
	StaffName              string // solo lectura (join con staff)
	Date                   time.Time
	TimeIn                 *time.Time
	TimeOut                *time.Time
	HoursWorked            *float64
	OvertimeHours          float64
	Action                 string // última acción registrada
	Status                 string
	AuthMethod             string
	FingerprintVerified    bool
	VerificationConfidence *float64
	DeviceInfo             string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsOpen indica si la jornada tiene entrada y aún no tiene salida.
func (r *AttendanceRecord) IsOpen() bool {
	return r.TimeIn != nil && r.TimeOut == nil
}

// AttendanceFilter criterios de listado. Campos vacíos no filtran.
type AttendanceFilter struct {
	StaffID string
	From    *time.Time // fecha inclusive
	To      *time.Time // fecha inclusive
	Status  string
	Limit   int
	Offset  int
}
