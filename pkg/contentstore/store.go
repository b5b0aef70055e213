// Package contentstore persists serialized object-tree nodes keyed by
// content hash, and retrieves them by the same key. Every backend is
// content-addressed: Put is idempotent (the same hash always maps to
// the same bytes) and Get never needs a version or timestamp.
package contentstore

import (
	"context"
	"errors"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// ErrNotFound is returned by Get when no entry exists for the given hash.
var ErrNotFound = errors.New("contentstore: not found")

// Store persists and retrieves serialized node bytes by content hash.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores data under h. Calling Put twice with the same h is a
	// no-op on the second call (content-addressing makes the bytes
	// identical by construction).
	Put(ctx context.Context, h hash.Hash, data []byte) error

	// Get returns the bytes stored under h, or ErrNotFound.
	Get(ctx context.Context, h hash.Hash) ([]byte, error)

	// Has reports whether h is present, without fetching its bytes.
	Has(ctx context.Context, h hash.Hash) (bool, error)

	// Close releases any resources (connections, handles) held by the store.
	Close() error
}
