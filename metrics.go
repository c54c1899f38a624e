package vivaldi

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting model metrics.
// Implement this interface to integrate with monitoring systems; the
// telemetry package ships Prometheus and go-metrics adapters.
type MetricsCollector interface {
	// RecordObserve is called after each observation.
	// sampleError is the relative error of the sample, err is non-nil if the
	// observation was rejected.
	RecordObserve(rtt time.Duration, sampleError float64, err error)

	// RecordRandomDirection is called when two coordinates coincide and a
	// random direction is used.
	RecordRandomDirection()

	// RecordReset is called when a Client discards an invalid coordinate.
	RecordReset()

	// RecordCoordinate is called with the local error estimate and height
	// after every accepted observation.
	RecordCoordinate(errorEstimate, height float64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordObserve(time.Duration, float64, error) {}
func (NoopMetricsCollector) RecordRandomDirection()                      {}
func (NoopMetricsCollector) RecordReset()                                {}
func (NoopMetricsCollector) RecordCoordinate(float64, float64)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ObserveCount     atomic.Int64
	ObserveErrors    atomic.Int64
	ObserveRTTNanos  atomic.Int64
	RandomDirections atomic.Int64
	Resets           atomic.Int64

	sampleErrorBits   atomic.Uint64
	errorEstimateBits atomic.Uint64
	heightBits        atomic.Uint64
}

// RecordObserve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordObserve(rtt time.Duration, sampleError float64, err error) {
	b.ObserveCount.Add(1)
	if err != nil {
		b.ObserveErrors.Add(1)
		return
	}
	b.ObserveRTTNanos.Add(rtt.Nanoseconds())
	b.sampleErrorBits.Store(math.Float64bits(sampleError))
}

// RecordRandomDirection implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRandomDirection() {
	b.RandomDirections.Add(1)
}

// RecordReset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReset() {
	b.Resets.Add(1)
}

// RecordCoordinate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCoordinate(errorEstimate, height float64) {
	b.errorEstimateBits.Store(math.Float64bits(errorEstimate))
	b.heightBits.Store(math.Float64bits(height))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		ObserveCount:     b.ObserveCount.Load(),
		ObserveErrors:    b.ObserveErrors.Load(),
		RandomDirections: b.RandomDirections.Load(),
		Resets:           b.Resets.Load(),
		LastSampleError:  math.Float64frombits(b.sampleErrorBits.Load()),
		ErrorEstimate:    math.Float64frombits(b.errorEstimateBits.Load()),
		Height:           math.Float64frombits(b.heightBits.Load()),
	}
	if accepted := stats.ObserveCount - stats.ObserveErrors; accepted > 0 {
		stats.AvgRTT = time.Duration(b.ObserveRTTNanos.Load() / accepted)
	}
	return stats
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	ObserveCount     int64
	ObserveErrors    int64
	AvgRTT           time.Duration
	RandomDirections int64
	Resets           int64
	LastSampleError  float64
	ErrorEstimate    float64
	Height           float64
}
