package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStorage(t *testing.T) *RedisStorage {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStorageFromClient(client)
}

func TestRedisStorage(t *testing.T) {
	exerciseStorage(t, newMiniredisStorage(t))
}

func TestRedisStorage_BacksUserStore(t *testing.T) {
	s := New(newMiniredisStorage(t))
	ctx := context.Background()

	user, err := s.Register(ctx, "Ada Lovelace", "ada@example.com", "08012345678", "secret1")
	require.NoError(t, err)

	session, err := s.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
}

func TestNewRedisStorage_BadURL(t *testing.T) {
	_, err := NewRedisStorage("not-a-url")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
