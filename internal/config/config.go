// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Loading layers defaults, an optional YAML file, and environment variables.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RPCURL is the Ethereum JSON-RPC endpoint used by the wallet inspector.
	RPCURL string `koanf:"rpc_url"`

	// RPCTimeoutMS bounds individual node calls.
	RPCTimeoutMS int `koanf:"rpc_timeout_ms"`

	// CacheTTLSeconds is how long a wallet analysis snapshot stays fresh.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// CacheMaxEntries bounds the analysis cache.
	CacheMaxEntries int `koanf:"cache_max_entries"`

	// LeaderboardMaxSize caps how many entries the leaderboard retains.
	LeaderboardMaxSize int `koanf:"leaderboard_max_size"`

	// MaxLeaderboardLimit caps GET /api/leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// UpdateQueueSize bounds the in-memory leaderboard update queue.
	UpdateQueueSize int `koanf:"update_queue_size"`

	// StoreBackend selects the leaderboard store: "memory" or "sqlite".
	StoreBackend string `koanf:"store_backend"`

	// SQLitePath is the database file used when StoreBackend is "sqlite".
	SQLitePath string `koanf:"sqlite_path"`

	// PinataJWT authenticates pinning uploads. Empty disables pinning.
	PinataJWT string `koanf:"pinata_jwt"`

	// PinataBaseURL overrides the pinning API host, mainly for tests.
	PinataBaseURL string `koanf:"pinata_base_url"`

	// BadgeOutputDir is where rendered badge images are written.
	BadgeOutputDir string `koanf:"badge_output_dir"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8000",
		RPCURL:              "http://localhost:8545",
		RPCTimeoutMS:        10_000,
		CacheTTLSeconds:     300,
		CacheMaxEntries:     10_000,
		LeaderboardMaxSize:  1000,
		MaxLeaderboardLimit: 100,
		UpdateQueueSize:     10_000,
		StoreBackend:        "memory",
		SQLitePath:          "data/leaderboard.db",
		BadgeOutputDir:      "data/badges",
	}
}
