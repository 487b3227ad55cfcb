// Package store persists console client state, most importantly the session
// token slot the SDK reads on every request.
package store

import (
	"context"
	"errors"
)

// ErrInvalidKey is returned for empty item keys.
var ErrInvalidKey = errors.New("store: invalid key")

// Storage is a string key/value store shaped like browser local storage.
// Concrete drivers (memory, sqlite) implement it and must be safe for
// concurrent use. Concurrent writers to the same key resolve last writer wins.
type Storage interface {
	// GetItem returns the value stored under key. ok is false when the key is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error
}
