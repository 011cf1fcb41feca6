package history

import (
	"context"
	"sync"

	"github.com/easycalchub/calchub/model"
)

// MemoryStore is an in-memory Store for tests and single-process setups.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]model.HistoryEntry // key: owner
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]model.HistoryEntry)}
}

// Load returns a copy of the owner's entries.
func (s *MemoryStore) Load(_ context.Context, owner string) ([]model.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.entries[owner]
	out := make([]model.HistoryEntry, len(src))
	copy(out, src)
	return out, nil
}

// Save replaces the owner's entries.
func (s *MemoryStore) Save(_ context.Context, owner string, entries []model.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(entries) == 0 {
		delete(s.entries, owner)
		return nil
	}
	cp := make([]model.HistoryEntry, len(entries))
	copy(cp, entries)
	s.entries[owner] = cp
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(_ context.Context) error { return nil }
