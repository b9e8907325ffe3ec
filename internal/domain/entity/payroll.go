package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payroll liquidación de un staff para el período [PeriodStart, PeriodEnd].
// Salary = HoursWorked * HourlyRate.
type Payroll struct {
	ID          string
	StaffID     string
	StaffName   string // solo lectura
	PeriodStart time.Time
	PeriodEnd   time.Time
	HoursWorked decimal.Decimal
	HourlyRate  decimal.Decimal
	Salary      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
