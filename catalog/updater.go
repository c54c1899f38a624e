package catalog

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/vivaldi"
	"github.com/hupe1980/vivaldi/resource"
)

const (
	// DefaultUpdatePeriod is how often Run flushes pending updates.
	DefaultUpdatePeriod = 5 * time.Second

	// DefaultBatchSize is the number of entries written per Put call.
	DefaultBatchSize = 128

	// DefaultMaxBatches is the number of batches a single flush may write.
	// Updates beyond BatchSize*MaxBatches are discarded.
	DefaultMaxBatches = 5
)

// UpdaterConfig configures an Updater.
type UpdaterConfig struct {
	BatchSize  int
	MaxBatches int

	// Resources paces the writes. Nil means unlimited.
	Resources *resource.Controller

	Logger *vivaldi.Logger
}

// Updater batches coordinate updates reported by many nodes and writes them
// to a Store periodically.
//
// Only the latest coordinate per node is kept between flushes, so a node
// that reports faster than the flush period costs a single write.
type Updater struct {
	store      Store
	batchSize  int
	maxBatches int
	resources  *resource.Controller
	logger     *vivaldi.Logger

	mu      sync.Mutex
	pending map[string]vivaldi.CoordinateRecord
}

// NewUpdater creates an Updater writing to store.
func NewUpdater(store Store, cfg UpdaterConfig) *Updater {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.MaxBatches <= 0 {
		cfg.MaxBatches = DefaultMaxBatches
	}
	if cfg.Resources == nil {
		cfg.Resources = resource.NewController(resource.Config{})
	}
	if cfg.Logger == nil {
		cfg.Logger = vivaldi.NoopLogger()
	}

	return &Updater{
		store:      store,
		batchSize:  cfg.BatchSize,
		maxBatches: cfg.MaxBatches,
		resources:  cfg.Resources,
		logger:     cfg.Logger,
		pending:    make(map[string]vivaldi.CoordinateRecord),
	}
}

// Enqueue records the latest coordinate of node for the next flush.
func (u *Updater) Enqueue(node string, coord vivaldi.CoordinateRecord) error {
	if node == "" {
		return fmt.Errorf("%w: empty node name", vivaldi.ErrInvalidCoordinate)
	}
	if !coord.IsValid() {
		return fmt.Errorf("%w: from node %q", vivaldi.ErrInvalidCoordinate, node)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.pending[node] = cloneRecord(coord)
	return nil
}

// Pending returns the number of nodes waiting for the next flush.
func (u *Updater) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return len(u.pending)
}

// Flush writes the pending updates and returns the number of entries
// written. At most BatchSize*MaxBatches entries are written, ordered by node
// name; the remainder is discarded. Flush waits for a writer slot of the
// resource controller.
func (u *Updater) Flush(ctx context.Context) (int, error) {
	if err := u.resources.AcquireWriter(ctx); err != nil {
		u.logger.LogBatchUpdate(ctx, 0, 0, err)
		return 0, err
	}
	defer u.resources.ReleaseWriter()

	return u.flush(ctx)
}

// TryFlush is Flush without waiting: if every writer slot is taken it
// returns false and leaves the pending updates for a later flush.
func (u *Updater) TryFlush(ctx context.Context) (int, bool, error) {
	if !u.resources.TryAcquireWriter() {
		return 0, false, nil
	}
	defer u.resources.ReleaseWriter()

	n, err := u.flush(ctx)
	return n, true, err
}

// flush expects the caller to hold a writer slot.
func (u *Updater) flush(ctx context.Context) (int, error) {
	u.mu.Lock()
	pending := u.pending
	u.pending = make(map[string]vivaldi.CoordinateRecord)
	u.mu.Unlock()

	if len(pending) == 0 {
		return 0, nil
	}

	nodes := slices.SortedFunc(maps.Keys(pending), strings.Compare)

	discarded := 0
	if limit := u.batchSize * u.maxBatches; len(nodes) > limit {
		discarded = len(nodes) - limit
		nodes = nodes[:limit]
	}

	written := 0
	for chunk := range slices.Chunk(nodes, u.batchSize) {
		if err := u.resources.WaitWrites(ctx, len(chunk)); err != nil {
			u.logger.LogBatchUpdate(ctx, written, discarded, err)
			return written, err
		}

		batch := make([]Entry, 0, len(chunk))
		for _, node := range chunk {
			batch = append(batch, Entry{Node: node, Coord: pending[node]})
		}

		if err := u.store.Put(ctx, batch...); err != nil {
			err = fmt.Errorf("failed to write coordinate batch: %w", err)
			u.logger.LogBatchUpdate(ctx, written, discarded, err)
			return written, err
		}
		written += len(batch)
	}

	u.logger.LogBatchUpdate(ctx, written, discarded, nil)
	return written, nil
}

// Run flushes pending updates every period until ctx is done, then flushes
// one last time.
func (u *Updater) Run(ctx context.Context, period time.Duration) error {
	if period <= 0 {
		period = DefaultUpdatePeriod
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_, err := u.Flush(context.WithoutCancel(ctx))
			return err
		case <-ticker.C:
			// A busy writer slot means another flush is still running;
			// pending updates wait for the next tick. Failures are logged
			// by flush; keep running.
			_, _, _ = u.TryFlush(ctx)
		}
	}
}
