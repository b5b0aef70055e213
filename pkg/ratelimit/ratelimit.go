// Package ratelimit bounds the rate of content-store operations.
// spec.md's concurrency model leaves throttling entirely to the
// caller; this package is that caller-side policy, not a requirement
// of the tree algorithms themselves.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/Mindburn-Labs/objgraph/pkg/contentstore"
	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// Store wraps a contentstore.Store, applying a token-bucket limit to
// Put and Get independently so that a burst of writes cannot starve
// reads, or vice versa.
type Store struct {
	backing    contentstore.Store
	putLimiter *rate.Limiter
	getLimiter *rate.Limiter
}

// New wraps backing with independent token buckets for writes and
// reads: putsPerSecond/putBurst govern Put, getsPerSecond/getBurst
// govern Get and Has.
func New(backing contentstore.Store, putsPerSecond, putBurst, getsPerSecond, getBurst float64) *Store {
	return &Store{
		backing:    backing,
		putLimiter: rate.NewLimiter(rate.Limit(putsPerSecond), int(putBurst)),
		getLimiter: rate.NewLimiter(rate.Limit(getsPerSecond), int(getBurst)),
	}
}

func (s *Store) Put(ctx context.Context, h hash.Hash, data []byte) error {
	if err := s.putLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("ratelimit: put: %w", err)
	}
	return s.backing.Put(ctx, h, data)
}

func (s *Store) Get(ctx context.Context, h hash.Hash) ([]byte, error) {
	if err := s.getLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("ratelimit: get: %w", err)
	}
	return s.backing.Get(ctx, h)
}

func (s *Store) Has(ctx context.Context, h hash.Hash) (bool, error) {
	if err := s.getLimiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("ratelimit: has: %w", err)
	}
	return s.backing.Has(ctx, h)
}

func (s *Store) Close() error {
	return s.backing.Close()
}
