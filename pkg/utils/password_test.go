package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	h1, err := HashPassword("same password")
	require.NoError(t, err)
	h2, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword("same password", h1))
	assert.True(t, VerifyPassword("same password", h2))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	malformed := []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$c2FsdA",
		"$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA",
	}

	for _, hash := range malformed {
		assert.False(t, VerifyPassword("anything", hash), "hash %q should not verify", hash)
	}
}

func TestVerifyPassword_CrossPasswords(t *testing.T) {
	h1, err := HashPassword("password-one")
	require.NoError(t, err)
	h2, err := HashPassword("password-two")
	require.NoError(t, err)

	assert.False(t, VerifyPassword("password-one", h2))
	assert.False(t, VerifyPassword("password-two", h1))
}
