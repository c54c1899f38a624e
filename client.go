package vivaldi

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/vivaldi/vector"
)

// Client manages the coordinate of the local node for concurrent callers.
//
// It wraps a Model with a mutex, validates incoming coordinates and RTTs,
// smooths RTT samples per remote node with a median filter and resets the
// model if an update ever produces NaN or infinite values.
type Client[V vector.Vector[V]] struct {
	mu sync.RWMutex

	model *Model[V]
	opts  options

	// latencyFilterSamples holds the latest RTT samples in seconds per node.
	latencyFilterSamples map[string][]float64

	stats ClientStats
}

// ClientStats is returned by Client.Stats.
type ClientStats struct {
	// Resets counts how often the coordinate was reset after an update
	// produced invalid values.
	Resets int
}

// NewClient creates a Client whose coordinate starts at the origin.
func NewClient[V vector.Vector[V]](optFns ...Option) *Client[V] {
	o := applyOptions(optFns)
	return &Client[V]{
		model:                newModel[V](o),
		opts:                 o,
		latencyFilterSamples: make(map[string][]float64),
	}
}

// Coordinate returns the current coordinate of the local node.
func (c *Client[V]) Coordinate() Coordinate[V] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.model.Coordinate()
}

// SetCoordinate forces the local coordinate, e.g. when restoring a snapshot.
func (c *Client[V]) SetCoordinate(coord Coordinate[V]) error {
	if !coord.IsValid() {
		return ErrInvalidCoordinate
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.model.coord = coord
	return nil
}

// ForgetNode drops the RTT samples kept for node. Call it when a node
// leaves the network.
func (c *Client[V]) ForgetNode(node string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.latencyFilterSamples, node)
}

// Stats returns a copy of the client statistics.
func (c *Client[V]) Stats() ClientStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.stats
}

// DistanceTo estimates the round-trip time between the local node and
// other.
func (c *Client[V]) DistanceTo(other Coordinate[V]) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return EstimateRTT(c.model.Coordinate(), other)
}

// Update feeds an RTT measurement to node into the model and returns the
// new local coordinate.
//
// The remote coordinate must be valid and rtt must lie in (0, max RTT].
// The model sees the median of the most recent samples for node rather than
// rtt itself, which filters out single outliers.
func (c *Client[V]) Update(node string, other Coordinate[V], rtt time.Duration) (Coordinate[V], error) {
	if !other.IsValid() {
		err := fmt.Errorf("%w: from node %q", ErrInvalidCoordinate, node)
		c.opts.metricsCollector.RecordObserve(rtt, 0, err)
		return Coordinate[V]{}, err
	}
	if rtt <= 0 || rtt > c.opts.maxRTT {
		err := &ErrRTTOutOfRange{RTT: rtt, Max: c.opts.maxRTT}
		c.opts.metricsCollector.RecordObserve(rtt, 0, err)
		return Coordinate[V]{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := secondsToDuration(c.latencyFilter(node, rtt.Seconds()))
	if err := c.model.Observe(other, filtered); err != nil {
		return Coordinate[V]{}, err
	}

	if !c.model.coord.IsValid() {
		c.stats.Resets++
		c.model.coord = initialCoordinate[V]()
		c.opts.logger.LogReset(node, c.stats.Resets)
		c.opts.metricsCollector.RecordReset()
		// Observe already reported the invalid values.
		c.opts.metricsCollector.RecordCoordinate(c.model.coord.Error(), c.model.coord.Height())
	}

	return c.model.Coordinate(), nil
}

// latencyFilter records a sample for node and returns the median of the
// retained samples.
func (c *Client[V]) latencyFilter(node string, rttSeconds float64) float64 {
	samples, ok := c.latencyFilterSamples[node]
	if !ok {
		samples = make([]float64, 0, c.opts.latencyFilterSize)
	}

	samples = append(samples, rttSeconds)
	if len(samples) > c.opts.latencyFilterSize {
		samples = samples[1:]
	}
	c.latencyFilterSamples[node] = samples

	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}
