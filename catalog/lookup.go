package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/vivaldi"
	"github.com/hupe1980/vivaldi/vector"
)

// Lookup returns the coordinate of node as stored in s.
func Lookup[V vector.Vector[V]](ctx context.Context, s Store, node string) (vivaldi.Coordinate[V], error) {
	e, err := s.Get(ctx, node)
	if err != nil {
		return vivaldi.Coordinate[V]{}, fmt.Errorf("lookup %s: %w", node, err)
	}

	coord, err := vivaldi.FromRecord[V](e.Coord)
	if err != nil {
		return vivaldi.Coordinate[V]{}, fmt.Errorf("lookup %s: %w", node, err)
	}
	return coord, nil
}

// EstimateRTT estimates the round-trip time between two nodes from their
// stored coordinates.
func EstimateRTT[V vector.Vector[V]](ctx context.Context, s Store, a, b string) (time.Duration, error) {
	ca, err := Lookup[V](ctx, s, a)
	if err != nil {
		return 0, err
	}
	cb, err := Lookup[V](ctx, s, b)
	if err != nil {
		return 0, err
	}
	return vivaldi.EstimateRTT(ca, cb), nil
}
