package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("insert attendance: %w", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "attendance_one_open_per_staff"})
	assert.Equal(t, codeUniqueViolation, pgCode(err))
	assert.True(t, isUniqueViolation(err))
	assert.Equal(t, "attendance_one_open_per_staff", constraintName(err))

	plain := fmt.Errorf("timeout")
	assert.Empty(t, pgCode(plain))
	assert.False(t, isUniqueViolation(plain))
	assert.Empty(t, constraintName(plain))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "x", derefString(nullString("x")))
	assert.Empty(t, derefString(nil))
}

func TestDateOnly(t *testing.T) {
	lagos := time.FixedZone("WAT", 3600)
	got := dateOnly(time.Date(2024, 3, 4, 23, 30, 0, 0, lagos))
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("6f1c2b9e-3a4d-4e5f-8a7b-1c2d3e4f5a6b"))
	assert.False(t, validID("AST-0001"))
	assert.False(t, validID(""))
}
