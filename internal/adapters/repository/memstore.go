package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/reflekt/repute/pkg/metrics"
)

// MemStore is an in-memory Store backed by a sorted slice. Suitable for
// single-process deployments; the SQLite store covers durability.
type MemStore struct {
	mu      sync.RWMutex
	entries []Entry // sorted best-first
	index   map[string]int
	maxSize int
}

// NewMemStore creates an empty in-memory leaderboard.
func NewMemStore(opts ...Option) *MemStore {
	cfg := newStoreConfig(opts...)
	return &MemStore{
		index:   make(map[string]int),
		maxSize: cfg.maxSize,
	}
}

// Upsert replaces or inserts the entry for e.Address and re-sorts.
func (s *MemStore) Upsert(_ context.Context, e Entry) error {
	key := addressKey(e.Address)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[key]; ok {
		s.entries[i] = e
	} else {
		s.entries = append(s.entries, e)
	}

	sort.SliceStable(s.entries, func(i, j int) bool {
		return better(
			s.entries[i].Score, addressKey(s.entries[i].Address),
			s.entries[j].Score, addressKey(s.entries[j].Address),
		)
	})
	if len(s.entries) > s.maxSize {
		s.entries = s.entries[:s.maxSize]
	}

	// Rebuild the index; truncation may have dropped arbitrary entries.
	s.index = make(map[string]int, len(s.entries))
	for i, entry := range s.entries {
		s.index[addressKey(entry.Address)] = i
	}

	metrics.RecordLeaderboardUpdate()
	metrics.UpdateLeaderboardSize(len(s.entries))
	return nil
}

// TopN returns up to n entries best-first with ranks assigned.
func (s *MemStore) TopN(_ context.Context, n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]Entry, n)
	for i := 0; i < n; i++ {
		out[i] = s.entries[i]
		out[i].Rank = i + 1
	}
	return out, nil
}

// Rank returns the ranked entry for an address.
func (s *MemStore) Rank(_ context.Context, address string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[addressKey(address)]
	if !ok {
		return Entry{}, ErrNotFound
	}
	e := s.entries[i]
	e.Rank = i + 1
	return e, nil
}

// Count returns the number of entries on the board.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }
