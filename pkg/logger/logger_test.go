package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_ProduccionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Env: "production", Level: "info"}, &buf)

	l.Info().Str("staff_id", "s-1").Msg("entrada registrada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "s-1", line["staff_id"])
	assert.Equal(t, "entrada registrada", line["message"])
}

func TestNewWithWriter_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Env: "production", Level: "warn"}, &buf)

	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	lg := l.Component("attendance")
	lg.Warn().Msg("sí")
	assert.Contains(t, buf.String(), `"component":"attendance"`)
}
