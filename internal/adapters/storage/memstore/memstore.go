// Package memstore is a map-backed ports.KeyValueStore for tests and
// throwaway runs. Nothing survives a restart.
package memstore

import (
	"context"
	"sync"

	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// Store keeps records in memory. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func compositeKey(namespace, key string) string {
	return namespace + "/" + key
}

// Get returns a copy of the stored value or domain.ErrNotFound.
func (s *Store) Get(_ context.Context, namespace, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[compositeKey(namespace, key)]
	if !ok {
		return nil, domain.NewNotFoundError("record", compositeKey(namespace, key))
	}

	return append([]byte(nil), v...), nil
}

// Put stores a copy of value.
func (s *Store) Put(_ context.Context, namespace, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[compositeKey(namespace, key)] = append([]byte(nil), value...)

	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "storage.memory" }

// Check implements ports.HealthChecker. A memory store is always healthy.
func (s *Store) Check(context.Context) error { return nil }

// Close drops every record.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.data)

	return nil
}
