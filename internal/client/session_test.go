package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-inventory/internal/application/dto"
)

func TestFileStore_RoundTripAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	empty, err := store.Load()
	require.NoError(t, err)
	assert.False(t, empty.LoggedIn())

	s := SessionFrom(&dto.AuthResponse{ID: "u-1", Username: "alice", Email: "alice@shop.test", Role: "admin", Token: "tok"})
	require.NoError(t, store.Save(s))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, loaded.LoggedIn())
	assert.True(t, loaded.IsAdmin())
	assert.Equal(t, "alice", loaded.User.Username)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	after, err := store.Load()
	require.NoError(t, err)
	assert.False(t, after.LoggedIn())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestDefaultSessionPath_Env(t *testing.T) {
	t.Setenv(SessionFileEnv, "/tmp/shopctl-test.json")
	p, err := DefaultSessionPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/shopctl-test.json", p)
}
