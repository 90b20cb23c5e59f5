package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("p")
	require.NoError(t, err)
	assert.NotEqual(t, []byte("p"), hash)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.True(t, h.VerifyPassword(hash, "p"))
	assert.False(t, h.VerifyPassword(hash, "P"))
	assert.False(t, h.VerifyPassword(hash, ""))
	assert.False(t, h.VerifyPassword([]byte("not-a-hash"), "p"))
}

func TestPasswordHasher_Burn(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, h.Burn(""))
	assert.False(t, h.Burn("anything"))
}

func TestNewPasswordHasher_Cost(t *testing.T) {
	h, err := NewPasswordHasher(0)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	_, err = NewPasswordHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}

func TestPasswordHasher_LongPassword(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	long := strings.Repeat("a", 100)
	hash, err := h.Hash(long)
	require.NoError(t, err)

	assert.True(t, h.VerifyPassword(hash, long))
	// only the first MaxPasswordBytes bytes take part
	assert.True(t, h.VerifyPassword(hash, long[:MaxPasswordBytes]+"zzz"))
	assert.False(t, h.VerifyPassword(hash, long[:MaxPasswordBytes-1]))
	assert.False(t, h.Burn(long))
}
