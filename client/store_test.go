package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Token()
	require.False(t, ok)

	require.NoError(t, store.SetToken("tok-1"))
	token, ok := store.Token()
	require.True(t, ok)
	require.Equal(t, "tok-1", token)

	require.NoError(t, store.ClearToken())
	_, ok = store.Token()
	require.False(t, ok)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "state.json")

	store := NewFileStore(path)
	require.NoError(t, store.SetToken("tok-1"))
	require.NoError(t, store.SetRememberedEmail("dana@example.com"))

	reopened := NewFileStore(path)
	token, ok := reopened.Token()
	require.True(t, ok)
	require.Equal(t, "tok-1", token)
	require.Equal(t, "dana@example.com", reopened.RememberedEmail())
}

func TestFileStoreClearKeepsRememberedEmail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	store := NewFileStore(path)
	require.NoError(t, store.SetToken("tok-1"))
	require.NoError(t, store.SetRememberedEmail("dana@example.com"))
	require.NoError(t, store.ClearToken())

	_, ok := store.Token()
	require.False(t, ok)
	require.Equal(t, "dana@example.com", store.RememberedEmail())
}

func TestFileStoreMissingFileReadsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	_, ok := store.Token()
	require.False(t, ok)
	require.Empty(t, store.RememberedEmail())
}
