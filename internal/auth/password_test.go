package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	require.True(t, CheckPassword("correct horse battery staple", hash))
	require.False(t, CheckPassword("wrong password", hash))
}

func TestHashPassword_SaltsEachCall(t *testing.T) {
	first, err := HashPassword("supersecret")
	require.NoError(t, err)
	second, err := HashPassword("supersecret")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, CheckPassword("supersecret", first))
	require.True(t, CheckPassword("supersecret", second))
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	require.False(t, CheckPassword("supersecret", ""))
	require.False(t, CheckPassword("supersecret", "not-a-bcrypt-digest"))
}
