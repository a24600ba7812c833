package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"bob", "alice_42", "User123", "a1_"}
	for _, name := range valid {
		assert.NoError(t, ValidateUsername(name), "username %q", name)
	}

	invalid := []string{"", "ab", "_leading", "has space", "way_too_long_username_x", "bad!char"}
	for _, name := range invalid {
		assert.Error(t, ValidateUsername(name), "username %q", name)
	}
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "alice", NormalizeUsername("  Alice "))
	assert.Equal(t, "bob_42", NormalizeUsername("BOB_42"))
}
