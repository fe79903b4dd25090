package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIdentity(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, "mentor-1", "mentor", time.Hour)
	require.NoError(t, err)

	sub, role, err := ExtractIdentity(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "mentor-1", sub)
	assert.Equal(t, "mentor", role)
}

func TestExtractIdentityRejects(t *testing.T) {
	secret := []byte("test-secret")

	expired, err := GenerateToken(secret, "u", "mentee", -time.Minute)
	require.NoError(t, err)
	_, _, err = ExtractIdentity(secret, expired)
	assert.Error(t, err)

	other, err := GenerateToken([]byte("other"), "u", "mentee", time.Hour)
	require.NoError(t, err)
	_, _, err = ExtractIdentity(secret, other)
	assert.Error(t, err)

	noRole, err := GenerateToken(secret, "u", "", time.Hour)
	require.NoError(t, err)
	_, _, err = ExtractIdentity(secret, noRole)
	assert.ErrorIs(t, err, ErrInvalidIdentity)
}
