package dto

import (
	"strings"
	"time"
)

// RecordAttendanceRequest marcación de entrada o salida.
type RecordAttendanceRequest struct {
	StaffID                string   `json:"staff_id" validate:"required"`
	Action                 string   `json:"action" validate:"required,oneof=IN OUT"`
	AuthMethod             string   `json:"auth_method" validate:"omitempty,oneof=manual fingerprint webauthn"`
	FingerprintVerified    bool     `json:"fingerprint_verified"`
	VerificationConfidence *float64 `json:"verification_confidence" validate:"omitempty,gte=0,lte=1"`
	DeviceInfo             string   `json:"device_info" validate:"omitempty,max=500"`
}

// Normalize acepta la acción sin importar mayúsculas ("in" == "IN").
func (r *RecordAttendanceRequest) Normalize() {
	r.StaffID = strings.TrimSpace(r.StaffID)
	r.Action = strings.ToUpper(strings.TrimSpace(r.Action))
	r.AuthMethod = strings.ToLower(strings.TrimSpace(r.AuthMethod))
}

// AttendanceResponse salida de una jornada.
type AttendanceResponse struct {
	ID                     string     `json:"id"`
	StaffID                string     `json:"staff_id"`
	StaffName              string     `json:"staff_name,omitempty"`
	Date                   string     `json:"date"`
	TimeIn                 *time.Time `json:"time_in"`
	TimeOut                *time.Time `json:"time_out"`
	HoursWorked            *float64   `json:"hours_worked"`
	OvertimeHours          float64    `json:"overtime_hours"`
	Action                 string     `json:"action"`
	Status                 string     `json:"status"`
	AuthMethod             string     `json:"auth_method"`
	FingerprintVerified    bool       `json:"fingerprint_verified"`
	VerificationConfidence *float64   `json:"verification_confidence,omitempty"`
	DeviceInfo             string     `json:"device_info,omitempty"`
}

// RecordAttendanceResponse respuesta de una marcación exitosa.
type RecordAttendanceResponse struct {
	Message string             `json:"message"`
	Record  AttendanceResponse `json:"record"`
}

// AttendanceListRequest filtros de listado (query string). From/To en YYYY-MM-DD.
type AttendanceListRequest struct {
	StaffID string `query:"staff_id"`
	From    string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To      string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Status  string `query:"status" validate:"omitempty,oneof=PRESENT LATE OVERTIME"`
	PageRequest
}

// AttendanceListResponse listado paginado de jornadas.
type AttendanceListResponse struct {
	Items []AttendanceResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// HoursWorkedResponse total de horas cerradas en el período.
type HoursWorkedResponse struct {
	StaffID     string  `json:"staff_id"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	HoursWorked float64 `json:"hoursWorked"`
}
