package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer("ng")

	got, err := n.Normalize("0803 123 4567")
	require.NoError(t, err)
	assert.Equal(t, "+2348031234567", got)

	got, err = n.Normalize("+234 803 123 4567")
	require.NoError(t, err)
	assert.Equal(t, "+2348031234567", got)

	got, err = n.Normalize("   ")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = n.Normalize("12")
	assert.Error(t, err)
}
