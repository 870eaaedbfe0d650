package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("apollo11")
	require.NoError(t, err)
	require.NotEqual(t, "apollo11", hash)
	require.True(t, CheckPassword("apollo11", hash))
	require.False(t, CheckPassword("gemini8", hash))
}

func TestDigest(t *testing.T) {
	digest := Digest("some-token")
	require.Len(t, digest, 64)
	require.Equal(t, digest, Digest("some-token"))
	require.NotEqual(t, digest, Digest("some-other-token"))
}
