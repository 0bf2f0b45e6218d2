package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	// low cost keeps the test fast; verification behavior is identical
	hash, err := HashPassword("Sup3rSecret!", 4)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, VerifyPassword("Sup3rSecret!", hash))
	assert.False(t, VerifyPassword("sup3rsecret!", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestVerifyPassword_BadHash(t *testing.T) {
	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, VerifyPassword("anything", ""))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	h1, err := HashPassword("Sup3rSecret!", 4)
	require.NoError(t, err)
	h2, err := HashPassword("Sup3rSecret!", 4)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword("Sup3rSecret!", h1))
	assert.True(t, VerifyPassword("Sup3rSecret!", h2))
}

func TestGenerateRandomPassword(t *testing.T) {
	pw, err := GenerateRandomPassword(16)
	require.NoError(t, err)
	assert.Len(t, pw, 16)

	for _, r := range pw {
		assert.True(t, strings.ContainsRune(passwordCharset, r), "unexpected character %q", r)
	}

	other, err := GenerateRandomPassword(16)
	require.NoError(t, err)
	assert.NotEqual(t, pw, other)
}

func TestGenerateRandomPassword_InvalidLength(t *testing.T) {
	_, err := GenerateRandomPassword(0)
	assert.Error(t, err)

	_, err = GenerateRandomPassword(-3)
	assert.Error(t, err)
}
