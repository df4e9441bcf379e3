package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth", "token")

	store, err := NewFileTokenStore(path)
	require.NoError(t, err)

	// Missing file reads as empty.
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("session-token"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing an already-clear store is not an error.
	require.NoError(t, store.Clear())
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore()

	require.NoError(t, store.Save("abc"))
	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
