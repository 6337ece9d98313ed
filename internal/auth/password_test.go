package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Abc12345!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Abc12345!", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Abc12345!")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Abc12345?")))
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	hash, err := HashPassword("Abc12345!", 99)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
