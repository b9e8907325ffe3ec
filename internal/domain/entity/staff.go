package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff representa un empleado. Es la referencia de asistencia y nómina.
type Staff struct {
	ID              string
	StaffCode       string // código interno único (ej. "AST-0042")
	Name            string
	Email           string
	Phone           string // E.164
	Gender          string
	DateOfBirth     *time.Time
	Department      string
	Role            string
	AppointmentType string // full-time, contract, casual
	BankName        string
	AccountNumber   string
	Address         string
	HourlyRate      decimal.Decimal // cero = sin tarifa
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
