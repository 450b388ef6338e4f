package repository

// Default store configuration constants.
const defaultMaxSize = 1000

// Option applies a configuration option to a store constructor.
type Option func(*storeConfig)

type storeConfig struct {
	maxSize int
}

func newStoreConfig(opts ...Option) storeConfig {
	cfg := storeConfig{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxSize caps how many entries the board retains; the worst
// entries are dropped when the cap is exceeded.
func WithMaxSize(n int) Option {
	return func(c *storeConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}
