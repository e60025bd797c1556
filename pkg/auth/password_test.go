package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("secret123")

	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)
	assert.True(t, VerifyPassword("secret123", hashed))
	assert.False(t, VerifyPassword("wrong-password", hashed))
}

func TestHashPassword_Unique(t *testing.T) {
	first, err := HashPassword("secret123")
	assert.NoError(t, err)
	second, err := HashPassword("secret123")
	assert.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, first, second)
}
