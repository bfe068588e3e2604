package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "nested", "cache.db"), ttl, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_Validation(t *testing.T) {
	_, err := Open("", time.Hour, zerolog.Nop())
	assert.Error(t, err)

	_, err = Open(filepath.Join(t.TempDir(), "cache.db"), 0, zerolog.Nop())
	assert.Error(t, err)
}

func TestStore_GetPut(t *testing.T) {
	store := openTestStore(t, time.Hour)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	require.NoError(t, store.Put("key", []byte(`{"results":[]}`)))
	body, ok := store.Get("key")
	require.True(t, ok)
	assert.Equal(t, `{"results":[]}`, string(body))

	require.NoError(t, store.Put("key", []byte(`{"id":1}`)))
	body, ok = store.Get("key")
	require.True(t, ok)
	assert.Equal(t, `{"id":1}`, string(body))
	assert.Equal(t, 1, store.Len())
}

func TestStore_Expiry(t *testing.T) {
	store := openTestStore(t, time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put("old", []byte("a")))
	now = now.Add(30 * time.Second)
	require.NoError(t, store.Put("new", []byte("b")))

	now = now.Add(45 * time.Second)
	_, ok := store.Get("old")
	assert.False(t, ok)
	_, ok = store.Get("new")
	assert.True(t, ok)

	removed, err := store.Purge()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())
}

func TestStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := Open(path, time.Hour, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Put("key", []byte("body")))
	require.NoError(t, store.Close())

	store, err = Open(path, time.Hour, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	body, ok := store.Get("key")
	require.True(t, ok)
	assert.Equal(t, "body", string(body))
}

func TestNew(t *testing.T) {
	backend, err := New(Options{Backend: BackendMemory, TTL: time.Hour, Size: 5}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, backend)
	require.NoError(t, backend.Close())

	backend, err = New(Options{Backend: BackendBolt, Path: filepath.Join(t.TempDir(), "c.db"), TTL: time.Hour}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &Store{}, backend)
	require.NoError(t, backend.Close())

	_, err = New(Options{Backend: "redis", TTL: time.Hour}, zerolog.Nop())
	assert.Error(t, err)

	_, err = New(Options{Backend: BackendMemory}, zerolog.Nop())
	assert.Error(t, err)
}
