package telemetry

import (
	"time"

	"github.com/armon/go-metrics"
	"github.com/hupe1980/vivaldi"
)

var _ vivaldi.MetricsCollector = (*GoMetricsCollector)(nil)

// GoMetricsCollector emits model metrics through armon/go-metrics, using
// the same key layout serf uses for its coordinate metrics.
type GoMetricsCollector struct {
	m      *metrics.Metrics
	prefix []string
}

// NewGoMetricsCollector creates a collector writing to m. A nil m selects
// the global go-metrics instance.
func NewGoMetricsCollector(m *metrics.Metrics, prefix ...string) *GoMetricsCollector {
	if len(prefix) == 0 {
		prefix = []string{namespace, "coordinate"}
	}
	return &GoMetricsCollector{m: m, prefix: prefix}
}

func (g *GoMetricsCollector) key(name string) []string {
	return append(append([]string(nil), g.prefix...), name)
}

func (g *GoMetricsCollector) incr(name string) {
	if g.m == nil {
		metrics.IncrCounter(g.key(name), 1)
		return
	}
	g.m.IncrCounter(g.key(name), 1)
}

func (g *GoMetricsCollector) sample(name string, v float32) {
	if g.m == nil {
		metrics.AddSample(g.key(name), v)
		return
	}
	g.m.AddSample(g.key(name), v)
}

func (g *GoMetricsCollector) gauge(name string, v float32) {
	if g.m == nil {
		metrics.SetGauge(g.key(name), v)
		return
	}
	g.m.SetGauge(g.key(name), v)
}

// RecordObserve implements vivaldi.MetricsCollector.
func (g *GoMetricsCollector) RecordObserve(rtt time.Duration, sampleError float64, err error) {
	if err != nil {
		g.incr("rejected")
		return
	}
	g.incr("observed")
	g.sample("rtt-ms", float32(rtt.Seconds()*1e3))
	g.sample("sample-error", float32(sampleError))
}

// RecordRandomDirection implements vivaldi.MetricsCollector.
func (g *GoMetricsCollector) RecordRandomDirection() {
	g.incr("random-direction")
}

// RecordReset implements vivaldi.MetricsCollector.
func (g *GoMetricsCollector) RecordReset() {
	g.incr("reset")
}

// RecordCoordinate implements vivaldi.MetricsCollector.
func (g *GoMetricsCollector) RecordCoordinate(errorEstimate, height float64) {
	g.gauge("error", float32(errorEstimate))
	g.gauge("height-ms", float32(height*1e3))
}
