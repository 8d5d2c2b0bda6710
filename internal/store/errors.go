package store

import "errors"

// Sentinel errors.
var (
	// ErrNotFound is returned by Get when the key has never been set or was deleted.
	ErrNotFound = errors.New("store: key not found")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store: closed")

	// ErrInjected is returned by Failing while failure injection is on.
	ErrInjected = errors.New("store: injected failure")
)

// IsNotFound reports whether err means the key is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
