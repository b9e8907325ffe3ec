package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStaffRequest alta de un empleado.
type CreateStaffRequest struct {
	StaffCode       string          `json:"staff_code" validate:"required,max=50"`
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Email           string          `json:"email" validate:"omitempty,email"`
	Phone           string          `json:"phone" validate:"omitempty,max=30"`
	Gender          string          `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth     string          `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Department      string          `json:"department" validate:"omitempty,max=100"`
	Role            string          `json:"role" validate:"omitempty,max=100"`
	AppointmentType string          `json:"appointment_type" validate:"omitempty,oneof=full-time part-time contract casual"`
	BankName        string          `json:"bank_name" validate:"omitempty,max=100"`
	AccountNumber   string          `json:"account_number" validate:"omitempty,numeric,max=20"`
	Address         string          `json:"address" validate:"omitempty,max=500"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
}

// StaffResponse salida de un empleado.
type StaffResponse struct {
	ID              string          `json:"id"`
	StaffCode       string          `json:"staff_code"`
	Name            string          `json:"name"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Gender          string          `json:"gender,omitempty"`
	DateOfBirth     string          `json:"date_of_birth,omitempty"`
	Department      string          `json:"department,omitempty"`
	Role            string          `json:"role,omitempty"`
	AppointmentType string          `json:"appointment_type,omitempty"`
	BankName        string          `json:"bank_name,omitempty"`
	AccountNumber   string          `json:"account_number,omitempty"`
	Address         string          `json:"address,omitempty"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
