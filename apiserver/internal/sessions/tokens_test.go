package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell"
)

func testTokenConfig() TokenConfig {
	return TokenConfig{
		SigningKey: []byte("supersecretsigningkey"),
		Issuer:     "inkwell",
		TTL:        time.Hour,
	}
}

func TestMintAndParseToken(t *testing.T) {
	config := testTokenConfig()
	token, expires, err := MintToken(config, "user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(config.TTL), expires, time.Minute)

	subject, parsedExpires, err := ParseToken(config, token)
	require.NoError(t, err)
	require.Equal(t, "user-123", subject)
	require.WithinDuration(t, expires, parsedExpires, time.Second)
}

func TestParseTokenExpired(t *testing.T) {
	config := testTokenConfig()
	config.TTL = -time.Minute
	token, _, err := MintToken(config, "user-123")
	require.NoError(t, err)

	_, _, err = ParseToken(config, token)
	require.Error(t, err)
	authErr, ok := err.(*inkwell.ErrAuthentication)
	require.True(t, ok)
	require.Equal(t, inkwell.TokenExpiredMessage, authErr.Message)
	require.True(t, authErr.Expired())
}

func TestParseTokenSignedWithWrongKey(t *testing.T) {
	config := testTokenConfig()
	token, _, err := MintToken(config, "user-123")
	require.NoError(t, err)

	config.SigningKey = []byte("someoneelsessigningkey")
	_, _, err = ParseToken(config, token)
	require.Error(t, err)
	authErr, ok := err.(*inkwell.ErrAuthentication)
	require.True(t, ok)
	require.Equal(t, "Invalid token", authErr.Message)
	require.False(t, authErr.Expired())
}

func TestParseTokenGarbage(t *testing.T) {
	_, _, err := ParseToken(testTokenConfig(), "not-even-a-jwt")
	require.Error(t, err)
	authErr, ok := err.(*inkwell.ErrAuthentication)
	require.True(t, ok)
	require.Equal(t, "Invalid token", authErr.Message)
}
