package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate("secret", "u-1", "s-1", "manager", "test", 5)
	require.NoError(t, err)

	claims, err := Parse("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "s-1", claims.StaffID)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u-1", "", "admin", "test", 5)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate("secret", "u-1", "", "admin", "test", -1)
	require.NoError(t, err)

	_, err = Parse("secret", tok)
	assert.Error(t, err)
}
