package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunPayrollRequest período a liquidar (YYYY-MM-DD, inclusive).
type RunPayrollRequest struct {
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end" validate:"required,datetime=2006-01-02"`
}

// PayrollResponse liquidación de un staff.
type PayrollResponse struct {
	ID          string          `json:"id"`
	StaffID     string          `json:"staff_id"`
	StaffName   string          `json:"staff_name,omitempty"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Salary      decimal.Decimal `json:"salary"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PayrollRunResponse resultado de una corrida de nómina.
type PayrollRunResponse struct {
	PeriodStart string            `json:"period_start"`
	PeriodEnd   string            `json:"period_end"`
	Items       []PayrollResponse `json:"items"`
	Skipped     []string          `json:"skipped,omitempty"` // staff sin tarifa
	TotalSalary decimal.Decimal   `json:"total_salary"`
}
