// Package memory provides an in-memory dedup store for tests.
package memory

import (
	"context"
	"sync"
)

// Store keeps processed ids in a map. It satisfies bot.DedupStore but loses
// state on restart, so it never backs a production pipeline.
type Store struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// New returns an empty Store.
func New() *Store {
	return &Store{seen: make(map[string]struct{})}
}

// Contains reports whether id was added.
func (s *Store) Contains(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[id]
	return ok, nil
}

// Add records id.
func (s *Store) Add(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[id] = struct{}{}
	return nil
}

// Len returns the number of recorded ids.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// Close satisfies the closable store contract; it has nothing to release.
func (s *Store) Close() error {
	return nil
}
