package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", formatMoney(decimal.Zero))
	assert.Equal(t, "999.90", formatMoney(decimal.RequireFromString("999.9")))
	assert.Equal(t, "1,000.00", formatMoney(decimal.NewFromInt(1000)))
	assert.Equal(t, "1,234,567.50", formatMoney(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-12,000.00", formatMoney(decimal.NewFromInt(-12000)))
}

func TestMaskAccount(t *testing.T) {
	assert.Equal(t, "******7890", maskAccount("0123457890"))
	assert.Equal(t, "123", maskAccount("123"))
	assert.Equal(t, "-", maskAccount(""))
}

func TestGeneratePayslip(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := &entity.Payroll{
		ID:          "9b2f3c1e-0000-4000-8000-000000000001",
		StaffID:     "s1",
		PeriodStart: start,
		PeriodEnd:   start.AddDate(0, 1, -1),
		HoursWorked: decimal.RequireFromString("160.50"),
		HourlyRate:  decimal.NewFromInt(1500),
		Salary:      decimal.RequireFromString("240750.00"),
	}
	staff := &entity.Staff{ID: "s1", StaffCode: "AST-001", Name: "Ada Obi", Department: "Production", BankName: "First Bank", AccountNumber: "0123456789"}

	out, err := NewPayslipGenerator("IVANSTAMAS").GeneratePayslip(context.Background(), p, staff)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
