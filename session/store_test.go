package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileTokenStore(t *testing.T) {
	tokens := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))

	// Vacant slot
	token, err := tokens.Load()
	require.NoError(t, err)
	require.Empty(t, token)
	require.NoError(t, tokens.Clear())

	require.NoError(t, tokens.Store("persisted-token"))
	token, err = tokens.Load()
	require.NoError(t, err)
	require.Equal(t, "persisted-token", token)

	require.NoError(t, tokens.Clear())
	token, err = tokens.Load()
	require.NoError(t, err)
	require.Empty(t, token)
}
