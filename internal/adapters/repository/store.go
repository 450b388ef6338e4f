// Package repository defines the leaderboard store interface and errors.
package repository

import (
	"context"
	"strings"
	"time"
)

// Entry represents one leaderboard row.
type Entry struct {
	Rank      int       `json:"rank"`
	Address   string    `json:"address"`
	Score     float64   `json:"score"`
	Tier      string    `json:"tier"`
	Badges    []string  `json:"badges"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store provides read/write access to the leaderboard.
//
// Ordering is score descending with ties broken by lowercase address
// ascending, so rankings are deterministic. Upserts are keyed by
// case-insensitive address: a new score for a known address replaces
// its entry rather than duplicating it, and the board is truncated to
// its configured maximum size after every write.
type Store interface {
	// Upsert inserts or replaces the entry for e.Address. The Rank field
	// of e is ignored; ranks are assigned on read.
	Upsert(ctx context.Context, e Entry) error

	// TopN returns up to n entries ordered best-first with ranks assigned.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Rank returns the entry for an address together with its rank.
	// Returns ErrNotFound for unknown addresses.
	Rank(ctx context.Context, address string) (Entry, error)

	// Count returns the number of entries currently on the board.
	Count(ctx context.Context) int

	// Close releases any resources held by the store.
	Close() error
}

// addressKey normalizes an address for identity comparisons.
func addressKey(address string) string {
	return strings.ToLower(address)
}

// better reports whether a ranks ahead of b.
func better(aScore float64, aKey string, bScore float64, bKey string) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aKey < bKey
}
