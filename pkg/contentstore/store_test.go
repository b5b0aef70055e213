package contentstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// memStore is a minimal in-process Store used to exercise the
// contract every backend must satisfy, without a live database.
type memStore struct {
	mu   sync.Mutex
	data map[hash.Hash][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[hash.Hash][]byte)}
}

func (m *memStore) Put(_ context.Context, h hash.Hash, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[h]; !ok {
		m.data[h] = append([]byte(nil), data...)
	}
	return nil
}

func (m *memStore) Get(_ context.Context, h hash.Hash) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[h]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *memStore) Has(_ context.Context, h hash.Hash) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[h]
	return ok, nil
}

func (m *memStore) Close() error { return nil }

func TestStoreContractPutGetRoundTrip(t *testing.T) {
	var s Store = newMemStore()
	ctx := context.Background()
	h := hash.New([]byte("node payload"))

	_, err := s.Get(ctx, h)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, h, []byte("node payload")))

	data, err := s.Get(ctx, h)
	require.NoError(t, err)
	require.Equal(t, []byte("node payload"), data)

	ok, err := s.Has(ctx, h)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStoreContractPutIsIdempotent(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()
	h := hash.New([]byte("node payload"))

	require.NoError(t, s.Put(ctx, h, []byte("node payload")))
	require.NoError(t, s.Put(ctx, h, []byte("node payload")))

	data, err := s.Get(ctx, h)
	require.NoError(t, err)
	require.Equal(t, []byte("node payload"), data)
}
