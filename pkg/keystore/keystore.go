// Package keystore provides a small keyed blob store used for per-user
// client state (session cache, cart, wishlist). Values are opaque byte
// slices; callers own the encoding.
package keystore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no value
var ErrNotFound = errors.New("keystore: key not found")

// Store is the persistence port for keyed client state
type Store interface {
	// Set stores value under key. A zero ttl means the value does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns the value for key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, keys ...string) error
}
