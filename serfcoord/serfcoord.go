// Package serfcoord converts between vivaldi coordinates and the
// coordinates gossiped by hashicorp/serf, so a node running this model can
// share a catalog with serf or consul agents.
//
// Serf coordinates carry an adjustment term this model does not use. It is
// zero on the way out and dropped on the way in.
package serfcoord

import (
	"fmt"

	"github.com/hashicorp/serf/coordinate"
	"github.com/hupe1980/vivaldi"
	"github.com/hupe1980/vivaldi/vector"
)

// Config returns the serf client configuration matching vectors of type V.
// Everything except the dimensionality keeps serf's defaults.
func Config[V vector.Vector[V]]() *coordinate.Config {
	var zero V

	cfg := coordinate.DefaultConfig()
	cfg.Dimensionality = uint(zero.Dim())
	return cfg
}

// ToSerf converts c into a serf coordinate. The stored height travels
// unfloored, like in a CoordinateRecord, so FromSerf restores c exactly.
func ToSerf[V vector.Vector[V]](c vivaldi.Coordinate[V]) *coordinate.Coordinate {
	r := c.Record()
	return &coordinate.Coordinate{
		Vec:    r.Vec,
		Error:  r.Error,
		Height: r.Height,
	}
}

// FromSerf converts a serf coordinate. It fails with
// vivaldi.ErrInvalidCoordinate for nil or non-finite coordinates and with a
// *vector.ErrDimensionMismatch when the dimensionality differs from V.
func FromSerf[V vector.Vector[V]](c *coordinate.Coordinate) (vivaldi.Coordinate[V], error) {
	if c == nil {
		return vivaldi.Coordinate[V]{}, fmt.Errorf("%w: nil serf coordinate", vivaldi.ErrInvalidCoordinate)
	}
	if !c.IsValid() {
		return vivaldi.Coordinate[V]{}, fmt.Errorf("%w: serf coordinate has non-finite values", vivaldi.ErrInvalidCoordinate)
	}

	return vivaldi.FromRecord[V](vivaldi.CoordinateRecord{
		Vec:    c.Vec,
		Error:  c.Error,
		Height: c.Height,
	})
}
