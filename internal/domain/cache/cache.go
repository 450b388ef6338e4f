// Package cache provides a bounded, expiring snapshot cache for wallet
// analyses, keyed by case-insensitive address.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/reflekt/repute/internal/domain/wallet"
)

// Cache stores recent wallet analyses as expiring snapshots. Entries
// past their TTL are treated as absent; a Get never returns stale data.
type Cache interface {
	// Get returns the cached analysis for address when present and fresh.
	Get(ctx context.Context, address string) (wallet.Analysis, bool)

	// Put stores an analysis snapshot for address, replacing any prior one.
	Put(ctx context.Context, address string, a wallet.Analysis)

	// Size returns the current number of entries, expired ones included.
	Size() int
}

type entry struct {
	analysis wallet.Analysis
	storedAt time.Time
}

type inMemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// Default cache configuration constants.
const (
	defaultTTL        = 5 * time.Minute
	defaultMaxEntries = 10000
)

// NewInMemoryCache creates a snapshot cache with configuration options.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{
		ttl:        defaultTTL,
		maxEntries: defaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = make(map[string]entry)
	return c
}

func (c *inMemoryCache) Get(_ context.Context, address string) (wallet.Analysis, bool) {
	key := strings.ToLower(address)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return wallet.Analysis{}, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		c.mu.Lock()
		// Recheck under the write lock; another Put may have refreshed it.
		if cur, still := c.entries[key]; still && c.now().Sub(cur.storedAt) >= c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return wallet.Analysis{}, false
	}
	return e.analysis, true
}

func (c *inMemoryCache) Put(_ context.Context, address string, a wallet.Analysis) {
	key := strings.ToLower(address)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	c.entries[key] = entry{analysis: a, storedAt: c.now()}
}

func (c *inMemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictOldest drops the entry with the earliest storedAt. Must be called
// with c.mu held for writing.
func (c *inMemoryCache) evictOldest() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for k, e := range c.entries {
		if !found || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, found = k, e.storedAt, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}
