package service

import (
	"time"

	"github.com/reflekt/repute/internal/adapters/inspector"
	"github.com/reflekt/repute/internal/adapters/pinning"
	"github.com/reflekt/repute/internal/adapters/repository"
	"github.com/reflekt/repute/internal/domain/cache"
	"github.com/reflekt/repute/internal/domain/reputation"
	"github.com/reflekt/repute/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithInspector sets the wallet inspector. Required.
func WithInspector(i inspector.Inspector) Option {
	return func(s *Service) {
		if i != nil {
			s.inspector = i
		}
	}
}

// WithEngine sets the reputation engine.
func WithEngine(e *reputation.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithStore sets the leaderboard store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.leaderboard = store
		}
	}
}

// WithCache sets the analysis cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.analysisCache = c
		}
	}
}

// WithPinner sets the IPFS pinning client.
func WithPinner(p pinning.Pinner) Option {
	return func(s *Service) {
		if p != nil {
			s.pinner = p
		}
	}
}

// WithQueueSize sets the maximum size of the leaderboard update queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithCacheTTL sets how long analyses are served from the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithBadgeOutputDir keeps a local copy of every rendered badge image.
// Empty disables local copies.
func WithBadgeOutputDir(dir string) Option {
	return func(s *Service) {
		s.badgeDir = dir
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
