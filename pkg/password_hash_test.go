package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	passwordHash, err := HashPassword("treino-forte-123")
	require.NoError(t, err)
	assert.NotEmpty(t, passwordHash)
	assert.NotEqual(t, "treino-forte-123", passwordHash)

	assert.True(t, CheckPasswordHash("treino-forte-123", passwordHash))
	assert.False(t, CheckPasswordHash("treino-fraco-123", passwordHash))
	assert.False(t, CheckPasswordHash("", passwordHash))
}

func TestHashPassword_DifferentSalts(t *testing.T) {
	hash1, err := HashPassword("mesma-senha")
	require.NoError(t, err)
	hash2, err := HashPassword("mesma-senha")
	require.NoError(t, err)

	// salted: two hashes of the same password differ, both still check out
	assert.NotEqual(t, hash1, hash2)
	assert.True(t, CheckPasswordHash("mesma-senha", hash1))
	assert.True(t, CheckPasswordHash("mesma-senha", hash2))
}
