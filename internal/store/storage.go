package store

import (
	"context"
	"errors"
)

// Keys in the backing store. The whole user collection lives under one key
// and the single active session under the other.
const (
	usersKey   = "veritas:users"
	sessionKey = "veritas:session"
)

// ErrStorageUnavailable wraps any backend failure. There is no fallback:
// callers surface it rather than pretending the store is empty.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Storage is the injected persistence medium. Get reports absence through
// the boolean, never through an error.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
