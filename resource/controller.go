// Package resource bounds the write load coordinate updates put on a
// catalog backend.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentWriters is the maximum number of concurrent write
	// batches. If 0, defaults to 1.
	MaxConcurrentWriters int64

	// WritesPerSecond is the sustained number of entries written per
	// second. If 0, unlimited.
	WritesPerSecond float64

	// WriteBurst is the number of entries that may be written at once
	// before pacing kicks in. Defaults to one second worth of writes.
	WriteBurst int
}

// Controller manages write concurrency and throughput.
type Controller struct {
	cfg Config

	// Concurrency
	writerSem *semaphore.Weighted
	inFlight  atomic.Int64

	// Throughput, nil if unlimited
	writeLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentWriters <= 0 {
		cfg.MaxConcurrentWriters = 1
	}

	c := &Controller{
		cfg:       cfg,
		writerSem: semaphore.NewWeighted(cfg.MaxConcurrentWriters),
	}

	if cfg.WritesPerSecond > 0 {
		if cfg.WriteBurst <= 0 {
			cfg.WriteBurst = max(1, int(cfg.WritesPerSecond))
			c.cfg.WriteBurst = cfg.WriteBurst
		}
		c.writeLimiter = rate.NewLimiter(rate.Limit(cfg.WritesPerSecond), cfg.WriteBurst)
	}

	return c
}

// AcquireWriter reserves a writer slot.
// Blocks if all slots are busy or until ctx is canceled.
func (c *Controller) AcquireWriter(ctx context.Context) error {
	if err := c.writerSem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.inFlight.Add(1)
	return nil
}

// TryAcquireWriter attempts to reserve a writer slot without blocking.
func (c *Controller) TryAcquireWriter() bool {
	if !c.writerSem.TryAcquire(1) {
		return false
	}
	c.inFlight.Add(1)
	return true
}

// ReleaseWriter releases a writer slot.
func (c *Controller) ReleaseWriter() {
	c.inFlight.Add(-1)
	c.writerSem.Release(1)
}

// InFlight returns the number of writer slots currently held.
func (c *Controller) InFlight() int64 {
	return c.inFlight.Load()
}

// WaitWrites blocks until the throughput limit allows n more entries to be
// written. Requests larger than the burst are paced in burst sized steps.
func (c *Controller) WaitWrites(ctx context.Context, n int) error {
	if c.writeLimiter == nil {
		return ctx.Err()
	}
	for n > 0 {
		step := min(n, c.cfg.WriteBurst)
		if err := c.writeLimiter.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}
