package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/armon/go-metrics"
	"github.com/hupe1980/vivaldi"
	"github.com/hupe1980/vivaldi/vector"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	p := NewPrometheusCollector(reg)

	p.RecordObserve(20*time.Millisecond, 0.1, nil)
	p.RecordObserve(30*time.Millisecond, 0.2, nil)
	p.RecordObserve(0, 0, errors.New("bad rtt"))
	p.RecordRandomDirection()
	p.RecordReset()
	p.RecordCoordinate(0.5, 0.001)

	assert.Equal(t, 2.0, promtest.ToFloat64(p.observations.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, promtest.ToFloat64(p.observations.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, promtest.ToFloat64(p.randomDirections))
	assert.Equal(t, 1.0, promtest.ToFloat64(p.resets))
	assert.Equal(t, 0.5, promtest.ToFloat64(p.errorEstimate))
	assert.Equal(t, 0.001, promtest.ToFloat64(p.height))

	count, err := promtest.GatherAndCount(reg, "vivaldi_observed_rtt_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrometheusCollector_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusCollector(reg)

	assert.Panics(t, func() { NewPrometheusCollector(reg) })
}

func TestPrometheusCollector_WithModel(t *testing.T) {
	p := NewPrometheusCollector(prometheus.NewRegistry())

	model := vivaldi.NewModel[vector.Dimension3](vivaldi.WithMetricsCollector(p))
	remote := vivaldi.NewModel[vector.Dimension3]()
	require.NoError(t, model.Observe(remote.Coordinate(), 10*time.Millisecond))

	assert.Equal(t, 1.0, promtest.ToFloat64(p.observations.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, promtest.ToFloat64(p.randomDirections))
	assert.Equal(t, model.Coordinate().Error(), promtest.ToFloat64(p.errorEstimate))
}

func newInmem(t *testing.T) (*metrics.Metrics, *metrics.InmemSink) {
	t.Helper()

	sink := metrics.NewInmemSink(time.Minute, time.Minute)

	cfg := metrics.DefaultConfig("")
	cfg.EnableHostname = false
	cfg.EnableRuntimeMetrics = false

	m, err := metrics.New(cfg, sink)
	require.NoError(t, err)
	return m, sink
}

func TestGoMetricsCollector(t *testing.T) {
	m, sink := newInmem(t)
	g := NewGoMetricsCollector(m)

	g.RecordObserve(20*time.Millisecond, 0.1, nil)
	g.RecordObserve(0, 0, errors.New("bad rtt"))
	g.RecordRandomDirection()
	g.RecordReset()
	g.RecordCoordinate(0.5, 0.002)

	data := sink.Data()
	require.NotEmpty(t, data)
	intv := data[0]

	assert.Equal(t, 1, intv.Counters["vivaldi.coordinate.observed"].Count)
	assert.Equal(t, 1, intv.Counters["vivaldi.coordinate.rejected"].Count)
	assert.Equal(t, 1, intv.Counters["vivaldi.coordinate.random-direction"].Count)
	assert.Equal(t, 1, intv.Counters["vivaldi.coordinate.reset"].Count)
	assert.InDelta(t, 20.0, intv.Samples["vivaldi.coordinate.rtt-ms"].Sum, 1e-4)
	assert.InDelta(t, 0.5, intv.Gauges["vivaldi.coordinate.error"].Value, 1e-6)
	assert.InDelta(t, 2.0, intv.Gauges["vivaldi.coordinate.height-ms"].Value, 1e-4)
}

func TestGoMetricsCollector_CustomPrefix(t *testing.T) {
	m, sink := newInmem(t)
	g := NewGoMetricsCollector(m, "serf", "coordinate")

	g.RecordReset()

	intv := sink.Data()[0]
	assert.Equal(t, 1, intv.Counters["serf.coordinate.reset"].Count)
}
