// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/reflekt/repute/internal/adapters/inspector"
	updatequeue "github.com/reflekt/repute/internal/adapters/mq/queue"
	updatewriter "github.com/reflekt/repute/internal/adapters/mq/worker"
	"github.com/reflekt/repute/internal/adapters/pinning"
	"github.com/reflekt/repute/internal/adapters/repository"
	"github.com/reflekt/repute/internal/domain/badge"
	"github.com/reflekt/repute/internal/domain/cache"
	"github.com/reflekt/repute/internal/domain/reputation"
	"github.com/reflekt/repute/internal/domain/wallet"
	"github.com/reflekt/repute/pkg/logger"
	"github.com/reflekt/repute/pkg/metrics"
)

// Service implements the API dependencies for the reputation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	inspector     inspector.Inspector
	engine        *reputation.Engine
	analysisCache cache.Cache
	leaderboard   repository.Store
	pinner        pinning.Pinner
	updateQueue   updatequeue.Queue
	writer        *updatewriter.StoreWriter

	// Configuration
	queueSize int
	cacheTTL  time.Duration
	badgeDir  string

	// State
	started      bool
	writerCancel context.CancelFunc

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize: 10000,
		cacheTTL:  5 * time.Minute,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components. Components not
// injected through options get in-memory defaults.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting reputation service...")

	if s.engine == nil {
		s.engine = reputation.New()
	}
	if s.analysisCache == nil {
		s.analysisCache = cache.NewInMemoryCache(cache.WithTTL(s.cacheTTL))
	}
	if s.leaderboard == nil {
		s.leaderboard = repository.NewMemStore()
		s.logger.Info(ctx, "using in-memory leaderboard store")
	}
	if s.pinner == nil {
		s.pinner = pinning.NewPinata("")
	}
	if s.inspector == nil {
		return ErrNoInspector
	}

	s.updateQueue = updatequeue.NewInMemoryQueue(
		updatequeue.WithCapacity(s.queueSize),
		updatequeue.WithBufferSize(s.queueSize),
	)

	// Every leaderboard write goes through the single writer so store
	// updates are serialized.
	s.writer = updatewriter.NewStoreWriter(s.updateQueue, s.leaderboard,
		updatewriter.WithName("leaderboard-writer"),
	)
	writerCtx, cancel := context.WithCancel(context.Background())
	s.writerCancel = cancel
	go s.writer.Run(writerCtx)

	s.started = true
	s.logger.Info(ctx, "reputation service started",
		logger.Int("queueSize", s.queueSize),
		logger.Duration("cacheTTL", s.cacheTTL),
		logger.Bool("pinningConfigured", s.pinner.Configured()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping reputation service...")

	// Closing the queue lets the writer drain what is already buffered.
	if s.updateQueue != nil {
		_ = s.updateQueue.Close()
	}
	if s.writer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := s.writer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "writer shutdown incomplete", logger.Error(err))
		}
		cancel()
	}
	if s.writerCancel != nil {
		s.writerCancel()
	}
	if s.leaderboard != nil {
		_ = s.leaderboard.Close()
	}

	s.started = false
	s.logger.Info(ctx, "reputation service stopped")
}

// Analyze inspects a wallet, serving repeated requests from the cache.
func (s *Service) Analyze(ctx context.Context, address string) (wallet.Analysis, error) {
	if analysis, ok := s.analysisCache.Get(ctx, address); ok {
		metrics.RecordCacheHit()
		return analysis, nil
	}
	metrics.RecordCacheMiss()

	analysis, err := s.inspector.Analyze(ctx, address)
	if err != nil {
		return wallet.Analysis{}, fmt.Errorf("analyze %s: %w", address, err)
	}

	s.analysisCache.Put(ctx, address, analysis)
	return analysis, nil
}

// Reputation analyzes a wallet and scores it.
func (s *Service) Reputation(ctx context.Context, address string) (reputation.Result, error) {
	analysis, err := s.Analyze(ctx, address)
	if err != nil {
		return reputation.Result{}, err
	}

	start := time.Now()
	result := s.engine.Score(analysis.Metrics)
	metrics.RecordScoreComputed(string(result.Tier), float64(time.Since(start).Milliseconds()))
	for _, b := range result.Badges {
		metrics.RecordBadgeAwarded(b)
	}

	return result, nil
}

// Mint scores a wallet, renders and pins its badge artifacts, and queues
// a leaderboard update.
func (s *Service) Mint(ctx context.Context, address string) (badge.MintReceipt, error) {
	result, err := s.Reputation(ctx, address)
	if err != nil {
		return badge.MintReceipt{}, err
	}

	var image bytes.Buffer
	if err := badge.EncodePNG(&image, result); err != nil {
		return badge.MintReceipt{}, fmt.Errorf("render badge: %w", err)
	}
	s.saveBadgeLocally(ctx, address, image.Bytes())

	imageCID, err := s.pinner.PinFile(ctx,
		fmt.Sprintf("reputation_badge_%s", address),
		"badge.png", &image,
	)
	if err != nil {
		return badge.MintReceipt{}, fmt.Errorf("pin image: %w", err)
	}

	analysis, err := s.Analyze(ctx, address)
	if err != nil {
		return badge.MintReceipt{}, err
	}
	metadata := badge.NewMetadata(result, analysis.Metrics, imageCID)
	metadataCID, err := s.pinner.PinJSON(ctx,
		fmt.Sprintf("metadata_%s", address), metadata,
	)
	if err != nil {
		return badge.MintReceipt{}, fmt.Errorf("pin metadata: %w", err)
	}

	update := updatequeue.NewUpdate(repository.Entry{
		Address:   address,
		Score:     result.TotalScore,
		Tier:      string(result.Tier),
		Badges:    result.Badges,
		UpdatedAt: time.Now().UTC(),
	})
	if !s.updateQueue.Enqueue(ctx, update) {
		return badge.MintReceipt{}, fmt.Errorf("enqueue leaderboard update: %w", updatequeue.ErrBackpressure)
	}

	s.logger.Info(ctx, "badge minted",
		logger.String("address", address),
		logger.Float64("score", result.TotalScore),
		logger.String("tier", string(result.Tier)),
		logger.String("imageCID", imageCID),
		logger.String("metadataCID", metadataCID),
	)

	return badge.MintReceipt{
		ImageCID:    imageCID,
		MetadataCID: metadataCID,
		TokenURI:    badge.TokenURI(metadataCID),
	}, nil
}

// saveBadgeLocally keeps a copy of the rendered image on disk when an
// output directory is configured. Failures are logged, not fatal; the
// pinned copy is the canonical one.
func (s *Service) saveBadgeLocally(ctx context.Context, address string, data []byte) {
	if s.badgeDir == "" {
		return
	}
	if err := os.MkdirAll(s.badgeDir, 0o755); err != nil {
		s.logger.Warn(ctx, "badge output dir unavailable", logger.Error(err))
		return
	}
	short := address
	if len(short) > 8 {
		short = short[:8]
	}
	name := fmt.Sprintf("badge_%s_%d.png", short, time.Now().Unix())
	if err := os.WriteFile(filepath.Join(s.badgeDir, name), data, 0o644); err != nil {
		s.logger.Warn(ctx, "failed to save badge image", logger.Error(err))
	}
}

// TopN returns the top N leaderboard entries.
func (s *Service) TopN(ctx context.Context, n int) ([]repository.Entry, error) {
	return s.leaderboard.TopN(ctx, n)
}

// Rank returns the ranked entry for an address.
func (s *Service) Rank(ctx context.Context, address string) (repository.Entry, error) {
	return s.leaderboard.Rank(ctx, address)
}

// Tiers returns the engine's tier ladder, best tier first.
func (s *Service) Tiers(_ context.Context) []reputation.TierBand {
	return s.engine.Tiers()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":           s.started,
		"queueSize":         s.queueSize,
		"cacheTTLSeconds":   int(s.cacheTTL.Seconds()),
		"pinningConfigured": s.pinner != nil && s.pinner.Configured(),
	}

	if s.started {
		queueLen := s.updateQueue.Len(ctx)
		boardSize := s.leaderboard.Count(ctx)
		stats["queueLength"] = queueLen
		stats["leaderboardSize"] = boardSize
		stats["cachedAnalyses"] = s.analysisCache.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateLeaderboardSize(boardSize)
	}

	return stats
}
