package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes and verifies a valid password", func(t *testing.T) {
		hash, err := HashPassword("a sensible passphrase", bcrypt.MinCost)
		require.NoError(t, err)
		assert.NotEqual(t, "a sensible passphrase", hash)

		assert.NoError(t, CheckPassword("a sensible passphrase", hash))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := HashPassword("short", bcrypt.MinCost)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects passwords beyond the bcrypt limit", func(t *testing.T) {
		_, err := HashPassword(strings.Repeat("x", 73), bcrypt.MinCost)
		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("a sensible passphrase", bcrypt.MinCost)
	require.NoError(t, err)

	assert.ErrorIs(t, CheckPassword("the wrong passphrase", hash), ErrInvalidPassword)
}

func TestGenerateAPIToken(t *testing.T) {
	plaintext, hash, err := GenerateAPIToken()
	require.NoError(t, err)

	assert.Len(t, plaintext, 64) // 32 random bytes, hex encoded
	assert.NotEqual(t, plaintext, hash)
	assert.Equal(t, hash, HashToken(plaintext))

	// Tokens must not repeat.
	second, _, err := GenerateAPIToken()
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, second)
}

func TestGenerateSessionSecret(t *testing.T) {
	secret, err := GenerateSessionSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 64)
}
