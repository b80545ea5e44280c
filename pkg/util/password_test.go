package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("temporal-123")
	require.NoError(t, err)
	assert.NotEqual(t, "temporal-123", hash)

	assert.True(t, VerifyPassword(hash, "temporal-123"))
	assert.False(t, VerifyPassword(hash, "otra-clave"))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("temporal-123")
	require.NoError(t, err)
	second, err := HashPassword("temporal-123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
