package telemetry

import (
	"time"

	"github.com/hupe1980/vivaldi"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vivaldi"

var _ vivaldi.MetricsCollector = (*PrometheusCollector)(nil)

// PrometheusCollector exports model metrics to Prometheus.
type PrometheusCollector struct {
	observations     *prometheus.CounterVec
	rtt              prometheus.Histogram
	sampleError      prometheus.Histogram
	randomDirections prometheus.Counter
	resets           prometheus.Counter
	errorEstimate    prometheus.Gauge
	height           prometheus.Gauge
}

// NewPrometheusCollector creates the collector and registers its metrics
// with reg. It panics if a metric is already registered, like
// prometheus.MustRegister.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	p := &PrometheusCollector{
		observations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "observations_total",
			Help:      "Number of RTT observations by result.",
		}, []string{"result"}),
		rtt: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "observed_rtt_seconds",
			Help:      "Accepted round-trip time samples.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
		}),
		sampleError: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sample_relative_error",
			Help:      "Relative error between estimated and observed RTT.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
		randomDirections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "random_directions_total",
			Help:      "Updates where the coordinates coincided.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Coordinates discarded after invalid updates.",
		}),
		errorEstimate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "error_estimate",
			Help:      "Current local error estimate.",
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "height_seconds",
			Help:      "Current local height.",
		}),
	}

	reg.MustRegister(
		p.observations,
		p.rtt,
		p.sampleError,
		p.randomDirections,
		p.resets,
		p.errorEstimate,
		p.height,
	)

	return p
}

// RecordObserve implements vivaldi.MetricsCollector.
func (p *PrometheusCollector) RecordObserve(rtt time.Duration, sampleError float64, err error) {
	if err != nil {
		p.observations.WithLabelValues("rejected").Inc()
		return
	}
	p.observations.WithLabelValues("accepted").Inc()
	p.rtt.Observe(rtt.Seconds())
	p.sampleError.Observe(sampleError)
}

// RecordRandomDirection implements vivaldi.MetricsCollector.
func (p *PrometheusCollector) RecordRandomDirection() {
	p.randomDirections.Inc()
}

// RecordReset implements vivaldi.MetricsCollector.
func (p *PrometheusCollector) RecordReset() {
	p.resets.Inc()
}

// RecordCoordinate implements vivaldi.MetricsCollector.
func (p *PrometheusCollector) RecordCoordinate(errorEstimate, height float64) {
	p.errorEstimate.Set(errorEstimate)
	p.height.Set(height)
}
