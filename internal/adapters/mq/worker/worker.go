// Package worker drains leaderboard updates off the queue into the store.
//
// A single Writer consumes the queue, which serializes every store
// write regardless of how many requests scored wallets concurrently.
package worker

import (
	"context"
	"fmt"

	"github.com/reflekt/repute/internal/adapters/mq/queue"
	"github.com/reflekt/repute/internal/adapters/repository"
	"github.com/reflekt/repute/pkg/logger"
	"github.com/reflekt/repute/pkg/metrics"
)

// Queue defines how the writer receives updates.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Update
}

// Upserter applies a single leaderboard write.
type Upserter interface {
	Upsert(ctx context.Context, e repository.Entry) error
}

// Writer applies queued leaderboard updates.
type Writer interface {
	// Run starts the writer loop until ctx is canceled or the queue closes.
	Run(ctx context.Context)

	// Shutdown stops the writer after it drains in-flight work.
	Shutdown(ctx context.Context) error
}

// StoreWriter implements Writer against a repository.Store.
type StoreWriter struct {
	queue Queue
	store Upserter
	name  string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewStoreWriter creates a writer with configuration options.
func NewStoreWriter(q Queue, store Upserter, opts ...Option) *StoreWriter {
	w := &StoreWriter{
		queue:    q,
		store:    store,
		name:     "writer",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("writer"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "writer" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the writer loop.
func (w *StoreWriter) Run(ctx context.Context) {
	defer close(w.done)

	updates := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if err := w.apply(ctx, u); err != nil {
				w.logger.Error(ctx, "leaderboard update failed", logger.Error(err))
			}
		}
	}
}

// Shutdown stops the writer.
func (w *StoreWriter) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *StoreWriter) apply(ctx context.Context, u queue.Update) error {
	if err := w.store.Upsert(ctx, u.Entry); err != nil {
		metrics.RecordLeaderboardError()
		return fmt.Errorf("apply update %s: %w", u.ID, err)
	}

	w.logger.Debug(ctx, "leaderboard updated",
		logger.String("updateID", u.ID),
		logger.String("address", u.Entry.Address),
		logger.Float64("score", u.Entry.Score),
	)
	return nil
}
