// Package store provides the flat key-value persistence used by the LitNotes core.
//
// Values are opaque byte slices. The core owns three keys (see keys.go) and
// writes each one wholesale on every mutation; backends only need atomic
// single-key set semantics.
package store

import (
	"context"
)

// Store is a string-keyed byte store.
//
// Get returns ErrNotFound for a missing key. Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
