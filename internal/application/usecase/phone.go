package usecase

import (
	"fmt"

	"github.com/astrobsm/ivanstamas-api/internal/domain"
)

// PhoneNormalizer normaliza teléfonos a E.164 (implementado por pkg/phone).
type PhoneNormalizer interface {
	Normalize(raw string) (string, error)
}

func normalizePhone(n PhoneNormalizer, raw string) (string, error) {
	if n == nil || raw == "" {
		return raw, nil
	}
	out, err := n.Normalize(raw)
	if err != nil {
		return "", fmt.Errorf("%w: teléfono %q: %v", domain.ErrInvalidInput, raw, err)
	}
	return out, nil
}
