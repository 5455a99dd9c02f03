package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStorage runs the contract every backend must satisfy.
func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "veritas:absent")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "veritas:users", `[{"id":"user_1"}]`))

	v, ok, err := s.Get(ctx, "veritas:users")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"user_1"}]`, v)

	require.NoError(t, s.Set(ctx, "veritas:users", `[]`))
	v, _, err = s.Get(ctx, "veritas:users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Delete(ctx, "veritas:users"))
	_, ok, err = s.Get(ctx, "veritas:users")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	assert.NoError(t, s.Delete(ctx, "veritas:users"))
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	exerciseStorage(t, fs)
}

func TestFileStorage_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := NewFileStorage(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Set(ctx, "veritas:session", `{"user_id":"user_1"}`))

	reopened, err := NewFileStorage(dir)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "veritas:session")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"user_id":"user_1"}`, v)
}
