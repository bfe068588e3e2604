package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(10, time.Minute)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Put("https://api.themoviedb.org/3/movie/550", []byte(`{"id":550}`)))

	body, ok := m.Get("https://api.themoviedb.org/3/movie/550")
	require.True(t, ok)
	assert.Equal(t, `{"id":550}`, string(body))

	// returned bodies are copies
	body[0] = 'X'
	body, _ = m.Get("https://api.themoviedb.org/3/movie/550")
	assert.Equal(t, `{"id":550}`, string(body))

	_, ok = m.Get("https://api.themoviedb.org/3/movie/551")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = m.Get("https://api.themoviedb.org/3/movie/550")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_Bounded(t *testing.T) {
	m := NewMemory(2, time.Hour)
	require.NoError(t, m.Put("a", []byte("1")))
	require.NoError(t, m.Put("b", []byte("2")))
	require.NoError(t, m.Put("c", []byte("3")))

	assert.Equal(t, 2, m.Len())
	_, ok := m.Get("a")
	assert.False(t, ok)

	require.NoError(t, m.Close())
	assert.Equal(t, 0, m.Len())
}
