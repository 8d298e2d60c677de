// Package file implements the dedup store as an append-only text log.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store records processed post ids, one per line, newline-terminated. The
// file is the source of truth across restarts; a missing file is treated as
// an empty store and created on open.
type Store struct {
	mu   sync.Mutex
	file *os.File
	seen map[string]struct{}
}

// Open loads the log at path, creating it (and its parent directory) when
// absent.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("dedup log path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create dedup log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open dedup log: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read dedup log: %w", err)
	}

	seen := make(map[string]struct{})
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			seen[line] = struct{}{}
		}
	}

	return &Store{file: f, seen: seen}, nil
}

// Contains reports whether id was recorded by any prior Add, including those
// from previous process lifetimes.
func (s *Store) Contains(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[id]
	return ok, nil
}

// Add appends id to the log and flushes to disk before returning, so a crash
// mid-pipeline does not replay the post.
func (s *Store) Add(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[id]; ok {
		return nil
	}
	if _, err := s.file.WriteString(id + "\n"); err != nil {
		return fmt.Errorf("append dedup log: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("flush dedup log: %w", err)
	}
	s.seen[id] = struct{}{}
	return nil
}

// Close releases the underlying file handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
