package vivaldi

import (
	"time"

	"github.com/hupe1980/vivaldi/vector"
)

const (
	// DefaultLatencyFilterSize is the number of RTT samples per remote node
	// a Client keeps for its median filter.
	DefaultLatencyFilterSize = 3

	// DefaultMaxRTT is the largest round-trip time a Client accepts.
	DefaultMaxRTT = 10 * time.Second
)

type options struct {
	rng               vector.RandSource
	logger            *Logger
	metricsCollector  MetricsCollector
	latencyFilterSize int
	maxRTT            time.Duration
}

func defaultOptions() options {
	return options{
		logger:            NoopLogger(),
		metricsCollector:  NoopMetricsCollector{},
		latencyFilterSize: DefaultLatencyFilterSize,
		maxRTT:            DefaultMaxRTT,
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.rng == nil {
		o.rng = vector.NewRandSource(uint64(time.Now().UnixNano()))
	}
	return o
}

// Option configures a Model or Client.
type Option func(*options)

// WithRandSource sets the source used to pick a direction when two
// coordinates coincide. Inject a seeded source for reproducible tests.
//
// The source is only used while the owner holds exclusive access to the
// model, so it does not need to be safe for concurrent use unless it is
// shared between models.
func WithRandSource(rng vector.RandSource) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &vivaldi.BasicMetricsCollector{}
//	model := vivaldi.NewModel[vector.Dimension3](vivaldi.WithMetricsCollector(metrics))
//	...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLatencyFilterSize sets how many recent RTT samples per remote node a
// Client feeds through its median filter. Values below 1 select 1, which
// disables filtering.
func WithLatencyFilterSize(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.latencyFilterSize = n
	}
}

// WithMaxRTT sets the largest round-trip time a Client accepts.
func WithMaxRTT(d time.Duration) Option {
	return func(o *options) {
		o.maxRTT = d
	}
}
