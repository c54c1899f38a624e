package sim

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/hupe1980/vivaldi"
	"github.com/hupe1980/vivaldi/vector"
)

// Network is a set of models exchanging RTT samples over a fixed topology.
type Network[V vector.Vector[V]] struct {
	nodes  []string
	models map[string]*vivaldi.Model[V]
	links  []Link
	rounds int
}

// NewNetwork creates one model per node. Each model gets its own random
// source derived from seed, so runs are reproducible.
func NewNetwork[V vector.Vector[V]](topo Topology, seed uint64, optFns ...vivaldi.Option) (*Network[V], error) {
	if err := topo.Validate(); err != nil {
		return nil, err
	}

	n := &Network[V]{
		nodes:  slices.Clone(topo.Nodes),
		models: make(map[string]*vivaldi.Model[V], len(topo.Nodes)),
		links:  slices.Clone(topo.Links),
	}

	for i, name := range n.nodes {
		opts := append(slices.Clone(optFns), vivaldi.WithRandSource(vector.NewRandSource(seed+uint64(i))))
		n.models[name] = vivaldi.NewModel[V](opts...)
	}

	return n, nil
}

// Round performs one reciprocal observation on every measured link, in the
// order the links were declared.
func (n *Network[V]) Round() error {
	for _, l := range n.links {
		if l.Indirect {
			continue
		}

		a, b := n.models[l.A], n.models[l.B]
		rtt := l.Duration()

		if err := a.Observe(b.Coordinate(), rtt); err != nil {
			return fmt.Errorf("%s observes %s: %w", l.A, l.B, err)
		}
		if err := b.Observe(a.Coordinate(), rtt); err != nil {
			return fmt.Errorf("%s observes %s: %w", l.B, l.A, err)
		}
	}

	n.rounds++
	return nil
}

// Run performs rounds observation rounds.
func (n *Network[V]) Run(rounds int) error {
	for range rounds {
		if err := n.Round(); err != nil {
			return err
		}
	}
	return nil
}

// Rounds returns the number of completed rounds.
func (n *Network[V]) Rounds() int {
	return n.rounds
}

// Nodes returns the node names in declaration order.
func (n *Network[V]) Nodes() []string {
	return slices.Clone(n.nodes)
}

// Coordinate returns the current coordinate of node.
func (n *Network[V]) Coordinate(node string) (vivaldi.Coordinate[V], error) {
	m, ok := n.models[node]
	if !ok {
		return vivaldi.Coordinate[V]{}, fmt.Errorf("%w: node %q", vivaldi.ErrNotFound, node)
	}
	return m.Coordinate(), nil
}

// Estimate returns the RTT the models predict between a and b.
func (n *Network[V]) Estimate(a, b string) (time.Duration, error) {
	ca, err := n.Coordinate(a)
	if err != nil {
		return 0, err
	}
	cb, err := n.Coordinate(b)
	if err != nil {
		return 0, err
	}
	return vivaldi.EstimateRTT(ca, cb), nil
}

// ReportRow compares the true and estimated RTT of one link.
type ReportRow struct {
	A, B      string
	Actual    time.Duration
	Estimated time.Duration

	// RelativeError is |estimated - actual| / actual.
	RelativeError float64

	Indirect bool
}

// Report returns one row per link, sorted by node names.
func (n *Network[V]) Report() []ReportRow {
	rows := make([]ReportRow, 0, len(n.links))
	for _, l := range n.links {
		est, _ := n.Estimate(l.A, l.B)
		actual := l.Duration()

		rows = append(rows, ReportRow{
			A:             l.A,
			B:             l.B,
			Actual:        actual,
			Estimated:     est,
			RelativeError: math.Abs(est.Seconds()-actual.Seconds()) / actual.Seconds(),
			Indirect:      l.Indirect,
		})
	}

	slices.SortFunc(rows, func(x, y ReportRow) int {
		if c := strings.Compare(x.A, y.A); c != 0 {
			return c
		}
		return strings.Compare(x.B, y.B)
	})
	return rows
}
