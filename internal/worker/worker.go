// Package worker runs the periodic maintenance loops: snapshot
// flushing and TTL cleanup.
package worker

import (
	"context"
	"time"

	"github.com/quiverdb/quiver/internal/telemetry/logger"
)

// Flushable is the contract required by the Flusher.
type Flushable interface {
	Flush(ctx context.Context) error
}

// Cleanable is the contract required by the Cleaner.
type Cleanable interface {
	Cleanup(ctx context.Context) int
}

// Flusher periodically writes dirty shards to disk.
type Flusher struct {
	svc      Flushable
	interval time.Duration
	log      logger.Logger
}

// NewFlusher creates a new Flusher.
func NewFlusher(svc Flushable, interval time.Duration, log logger.Logger) *Flusher {
	return &Flusher{
		svc:      svc,
		interval: interval,
		log:      log,
	}
}

// Run executes the flush loop until the context is cancelled. A
// failed flush pass is logged and retried on the next tick; entries
// accumulated in the meantime are written then. It blocks and should
// be run in its own goroutine.
func (f *Flusher) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := f.svc.Flush(ctx); err != nil {
				f.log.Warn("snapshot flush failed, will retry", "error", err)
			}
		case <-ctx.Done():
			f.log.Debug("flusher stopped")
			return
		}
	}
}

// Cleaner periodically removes expired entries from the store.
type Cleaner struct {
	svc      Cleanable
	interval time.Duration
	log      logger.Logger
}

// NewCleaner creates a new Cleaner.
func NewCleaner(svc Cleanable, interval time.Duration, log logger.Logger) *Cleaner {
	return &Cleaner{
		svc:      svc,
		interval: interval,
		log:      log,
	}
}

// Run executes the cleanup loop until the context is cancelled. It
// blocks and should be run in its own goroutine.
func (c *Cleaner) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.svc.Cleanup(ctx)
		case <-ctx.Done():
			c.log.Debug("cleaner stopped")
			return
		}
	}
}
