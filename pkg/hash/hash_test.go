package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("Password1")
	require.NoError(t, err)
	require.NotEqual(t, "Password1", h)

	require.True(t, CheckPassword(h, "Password1"))
	require.False(t, CheckPassword(h, "password1"))
	require.False(t, CheckPassword("not-a-hash", "Password1"))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := HashPassword("Password1")
	require.NoError(t, err)
	h2, err := HashPassword("Password1")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
