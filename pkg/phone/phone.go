// Package phone normaliza teléfonos de staff, proveedores y clientes a formato E.164.
package phone

import (
	"fmt"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// Normalizer convierte números locales o internacionales a E.164 usando una región por defecto.
type Normalizer struct {
	region string
}

// NewNormalizer construye el normalizador. region es un código ISO 3166-1 alfa-2 (ej. "NG").
func NewNormalizer(region string) *Normalizer {
	return &Normalizer{region: strings.ToUpper(strings.TrimSpace(region))}
}

// Normalize valida el número y lo devuelve en E.164 (+2348012345678).
// Un string vacío se devuelve tal cual: el teléfono es opcional en varias entidades.
func (n *Normalizer) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	p, err := libphonenumber.Parse(raw, n.region)
	if err != nil {
		return "", fmt.Errorf("teléfono %q: %w", raw, err)
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("teléfono %q no es válido", raw)
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}
