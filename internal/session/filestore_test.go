package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.Equal(t, Session{}, store.Current())

	require.NoError(t, store.Set(Session{Token: "tok-123", IsAdmin: true}))
	require.Equal(t, Session{Token: "tok-123", IsAdmin: true}, store.Current())

	// A login survives a restart.
	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	require.Equal(t, Session{Token: "tok-123", IsAdmin: true}, reopened.Current())
}

func TestFileStoreWritesBothKeysTogether(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(Session{Token: "tok", IsAdmin: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "token")
	require.Contains(t, raw, "is_admin")
}

func TestFileStoreClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(Session{Token: "tok"}))

	require.NoError(t, store.Clear())
	first := store.Current()
	require.NoError(t, store.Clear())
	require.Equal(t, first, store.Current())
	require.Equal(t, Session{}, store.Current())

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStoreEpochAdvancesOnEveryWrite(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	start := store.Epoch()
	require.NoError(t, store.Set(Session{Token: "a"}))
	afterSet := store.Epoch()
	require.Greater(t, afterSet, start)

	// Clearing an already-empty session still advances the epoch so a
	// response launched before the clear is detectable as stale.
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	require.Greater(t, store.Epoch(), afterSet)
}

func TestFileStoreDiscardsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.Equal(t, Session{}, store.Current())
}
