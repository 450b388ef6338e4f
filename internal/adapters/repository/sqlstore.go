package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/reflekt/repute/pkg/metrics"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS leaderboard (
	address_key TEXT PRIMARY KEY,
	address     TEXT NOT NULL,
	score       REAL NOT NULL,
	tier        TEXT NOT NULL,
	badges      TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_leaderboard_score
	ON leaderboard (score DESC, address_key ASC);
`

// SQLStore is a durable Store backed by SQLite.
type SQLStore struct {
	db      *sql.DB
	maxSize int
}

// NewSQLStore opens (or creates) a SQLite database and runs migrations.
func NewSQLStore(path string, opts ...Option) (*SQLStore, error) {
	cfg := newStoreConfig(opts...)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %w", ErrStore, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("%w: pragma: %w", ErrStore, err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("%w: migrate: %w", ErrStore, err)
	}

	return &SQLStore{db: db, maxSize: cfg.maxSize}, nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Upsert replaces or inserts the entry for e.Address, then prunes the
// board past its cap.
func (s *SQLStore) Upsert(ctx context.Context, e Entry) error {
	badges, err := json.Marshal(e.Badges)
	if err != nil {
		return fmt.Errorf("%w: marshal badges: %w", ErrStore, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		metrics.RecordLeaderboardError()
		return fmt.Errorf("%w: begin: %w", ErrStore, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx, `
		INSERT INTO leaderboard (address_key, address, score, tier, badges, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(address_key) DO UPDATE SET
			address = excluded.address,
			score = excluded.score,
			tier = excluded.tier,
			badges = excluded.badges,
			updated_at = excluded.updated_at`,
		addressKey(e.Address), e.Address, e.Score, e.Tier, string(badges),
		e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		metrics.RecordLeaderboardError()
		return fmt.Errorf("%w: upsert: %w", ErrStore, err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM leaderboard WHERE address_key NOT IN (
			SELECT address_key FROM leaderboard
			ORDER BY score DESC, address_key ASC
			LIMIT ?
		)`, s.maxSize)
	if err != nil {
		metrics.RecordLeaderboardError()
		return fmt.Errorf("%w: prune: %w", ErrStore, err)
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordLeaderboardError()
		return fmt.Errorf("%w: commit: %w", ErrStore, err)
	}

	metrics.RecordLeaderboardUpdate()
	metrics.UpdateLeaderboardSize(s.Count(ctx))
	return nil
}

// TopN returns up to n entries best-first with ranks assigned.
func (s *SQLStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT address, score, tier, badges, updated_at FROM leaderboard
		ORDER BY score DESC, address_key ASC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", ErrStore, err)
	}
	defer rows.Close()

	var out []Entry
	rank := 0
	for rows.Next() {
		rank++
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		e.Rank = rank
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan: %w", ErrStore, err)
	}
	return out, nil
}

// Rank returns the ranked entry for an address.
func (s *SQLStore) Rank(ctx context.Context, address string) (Entry, error) {
	key := addressKey(address)

	row := s.db.QueryRowContext(ctx, `
		SELECT address, score, tier, badges, updated_at FROM leaderboard
		WHERE address_key = ?`, key)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}

	var ahead int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM leaderboard
		WHERE score > ? OR (score = ? AND address_key < ?)`,
		e.Score, e.Score, key,
	).Scan(&ahead)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: rank: %w", ErrStore, err)
	}
	e.Rank = ahead + 1
	return e, nil
}

// Count returns the number of entries on the board.
func (s *SQLStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM leaderboard").Scan(&n); err != nil {
		return 0
	}
	return n
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		e         Entry
		badges    string
		updatedAt string
	)
	if err := row.Scan(&e.Address, &e.Score, &e.Tier, &badges, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("%w: scan: %w", ErrStore, err)
	}
	if err := json.Unmarshal([]byte(badges), &e.Badges); err != nil {
		return Entry{}, fmt.Errorf("%w: decode badges: %w", ErrStore, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: decode updated_at: %w", ErrStore, err)
	}
	e.UpdatedAt = ts
	return e, nil
}
