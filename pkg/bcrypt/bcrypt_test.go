package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	b := NewWithCost(bcrypt.MinCost)

	hash, err := b.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, b.ComparePassword(hash, "secret1"))
	assert.ErrorIs(t, b.ComparePassword(hash, "secret2"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestNewReadsCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "5")
	hash, err := New().HashPassword("x")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)

	t.Setenv("BCRYPT_COST", "99")
	assert.Equal(t, bcrypt.DefaultCost, New().(*bcryptService).cost)
}
