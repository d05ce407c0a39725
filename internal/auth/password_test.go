package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	// Each call embeds a fresh salt, so outputs differ but both verify.
	assert.NotEqual(t, first, second)
	assert.NoError(t, ComparePassword(first, "s3cret"))
	assert.NoError(t, ComparePassword(second, "s3cret"))
}

func TestCompareDummy(t *testing.T) {
	// Burns a comparison without panicking regardless of input.
	CompareDummy("")
	CompareDummy("anything")
}
