package worker

import (
	"github.com/reflekt/repute/pkg/logger"
)

// Option applies a configuration option to the StoreWriter.
type Option func(*StoreWriter)

// WithName sets the writer name for identification and logging.
func WithName(name string) Option {
	return func(w *StoreWriter) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the writer.
func WithLogger(logger logger.Logger) Option {
	return func(w *StoreWriter) {
		if logger != nil {
			w.logger = logger
		}
	}
}
