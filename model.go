package vivaldi

import (
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/vivaldi/vector"
)

const (
	// ErrorLimit is the Ce constant of the algorithm. It bounds how far a
	// single sample moves both the error estimate and the position.
	ErrorLimit = 0.25

	// InitialError is the error estimate of a new Model.
	InitialError = 2.0

	// InitialHeight is the height of a new Model.
	InitialHeight = 0.1

	floatZero = 1.0e-8
)

// unitVector holds a vector with a magnitude of 1.
type unitVector[V vector.Vector[V]] struct {
	v V
}

func newUnitVector[V vector.Vector[V]](v V) unitVector[V] {
	assertUnit(float64(v.Magnitude()))
	return unitVector[V]{v: v}
}

// Model is a Vivaldi latency model generic over N dimensional vectors.
//
// A single Model should be instantiated for each distinct network of nodes
// the caller participates in. Messages exchanged between nodes should carry
// the current coordinate, and the model is updated with the measured
// round-trip time by calling Observe.
//
// A Model is not safe for concurrent use. Use a Client when several
// goroutines feed observations into the same model.
type Model[V vector.Vector[V]] struct {
	coord   Coordinate[V]
	rng     vector.RandSource
	logger  *Logger
	metrics MetricsCollector
}

// NewModel initialises a new Vivaldi model positioned at the origin.
//
// The vector type must be given explicitly:
//
//	model := vivaldi.NewModel[vector.Dimension3]()
func NewModel[V vector.Vector[V]](optFns ...Option) *Model[V] {
	return newModel[V](applyOptions(optFns))
}

func newModel[V vector.Vector[V]](o options) *Model[V] {
	return &Model[V]{
		coord:   initialCoordinate[V](),
		rng:     o.rng,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
}

func initialCoordinate[V vector.Vector[V]]() Coordinate[V] {
	var origin V
	return NewCoordinate(origin, InitialError, InitialHeight)
}

// Coordinate returns the current coordinate of the local node.
func (m *Model[V]) Coordinate() Coordinate[V] {
	return m.coord
}

// Observe updates the coordinate of the local node from the coordinate of a
// remote node and the round-trip time measured to it.
//
//	// The remote sends its current coordinate, e.g. in an RPC response.
//	remote := remoteModel.Coordinate()
//
//	// The local application times the request...
//	rtt := 42 * time.Millisecond
//
//	// ...and feeds both into the model.
//	err := model.Observe(remote, rtt)
//
// A zero or negative rtt is rejected with ErrInvalidRTT and leaves the model
// unchanged.
func (m *Model[V]) Observe(remote Coordinate[V], rtt time.Duration) error {
	if rtt <= 0 {
		err := fmt.Errorf("%w: got %v", ErrInvalidRTT, rtt)
		m.logger.LogObserve(rtt, 0, m.coord.Error(), m.coord.Height(), err)
		m.metrics.RecordObserve(rtt, 0, err)
		return err
	}

	local := m.coord
	rttSeconds := rtt.Seconds()

	// Sample weight balances local and remote error (1)
	//
	//	w = ei/(ei + ej)
	//
	weight := local.Error() / (local.Error() + remote.Error())

	// Relative error of this sample (2)
	//
	//	es = | ||xi - xj|| - rtt | / rtt
	//
	diffMag := float64(local.Vector().Sub(remote.Vector()).Magnitude())
	dist := EstimateRTT(local, remote).Seconds()
	sampleError := math.Abs(dist-rttSeconds) / rttSeconds

	// Weighted moving average of the local error (3)
	//
	//	ei = es × ce × w + ei × (1 − ce × w)
	//
	errorEstimate := sampleError*ErrorLimit*weight + local.Error()*(1.0-ErrorLimit*weight)

	// Adaptive timestep and weighted force (4)
	//
	//	δ = cc × w
	//	F = δ × ( rtt − ||xi − xj|| )
	//
	delta := ErrorLimit * weight
	force := delta * (rttSeconds - dist)

	unit, ok := unitVectorFor(local.Vector(), remote.Vector())
	if !ok {
		unit = randomUnitVector[V](m.rng)
		m.logger.LogRandomDirection()
		m.metrics.RecordRandomDirection()
	}

	// New height of the local node
	//
	//	h = (hi + hj) × F / ||xi − xj|| + hi
	//
	height := local.Height()
	if diffMag > floatZero {
		height = (local.Height()+remote.Height())*force/diffMag + local.Height()
	}

	// New position (4)
	//
	//	xi = xi + F × u(xi − xj)
	//
	m.coord = NewCoordinate(local.Vector().Add(unit.v.Mul(force)), errorEstimate, height)

	m.logger.LogObserve(rtt, sampleError, m.coord.Error(), m.coord.Height(), nil)
	m.metrics.RecordObserve(rtt, sampleError, nil)
	m.metrics.RecordCoordinate(m.coord.Error(), m.coord.Height())

	return nil
}

// EstimateRTT returns the round-trip time the model predicts between two
// coordinates.
//
// If the nodes behind a and b have communicated recently the estimate is
// accurate. Nodes that never communicated still get a fair estimate given a
// sufficiently mature, dense model.
func EstimateRTT[V vector.Vector[V]](a, b Coordinate[V]) time.Duration {
	dist := float64(a.Vector().Sub(b.Vector()).Magnitude())

	// Apply the fixed cost heights. Summing them first keeps the result
	// identical when a and b are swapped.
	return secondsToDuration(dist + (a.Height() + b.Height()))
}

// unitVectorFor returns the unit vector pointing from to towards from, or
// false when the two are too close for the direction to be meaningful.
func unitVectorFor[V vector.Vector[V]](from, to V) (unitVector[V], bool) {
	diff := from.Sub(to)

	mag := float64(diff.Magnitude())
	if mag < floatZero {
		return unitVector[V]{}, false
	}

	return newUnitVector(diff.Div(mag)), true
}

// randomUnitVector returns a unit vector in a random direction.
func randomUnitVector[V vector.Vector[V]](rng vector.RandSource) unitVector[V] {
	var zero V
	for {
		v := zero.Random(rng)
		if mag := float64(v.Magnitude()); mag > floatZero {
			return newUnitVector(v.Div(mag))
		}
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
