package vivaldi

import (
	"encoding/json"
	"math"

	"github.com/hupe1980/vivaldi/vector"
)

// MinHeight is the smallest height a Coordinate reports.
//
// Each node has a positive height element in its coordinates so that the
// height can always be scaled up or down. Any positive value works as the
// base.
const MinHeight = 1.0e-5

// Coordinate is a point in the Vivaldi model: a Euclidean position, the
// estimated relative error of that position and a height above the
// Euclidean plane.
//
// Coordinates are immutable values and safe to share between goroutines.
type Coordinate[V vector.Vector[V]] struct {
	vec           V
	errorEstimate float64
	height        float64
}

// NewCoordinate returns a Coordinate with the given position, error estimate
// and height. The height is stored as given and floored on read.
func NewCoordinate[V vector.Vector[V]](vec V, errorEstimate, height float64) Coordinate[V] {
	return Coordinate[V]{
		vec:           vec,
		errorEstimate: errorEstimate,
		height:        height,
	}
}

// Vector returns the Euclidean position.
func (c Coordinate[V]) Vector() V {
	return c.vec
}

// Error returns the current estimated position error.
func (c Coordinate[V]) Error() float64 {
	return c.errorEstimate
}

// Height returns the height of the Coordinate above the Euclidean plane,
// never less than MinHeight.
func (c Coordinate[V]) Height() float64 {
	if c.height < MinHeight {
		return MinHeight
	}
	return c.height
}

// IsValid reports whether every component, the error and the height are
// finite.
func (c Coordinate[V]) IsValid() bool {
	for _, v := range c.vec.Components() {
		if !isFinite(v) {
			return false
		}
	}
	return isFinite(c.errorEstimate) && isFinite(c.height)
}

// CoordinateRecord is the wire form of a Coordinate.
//
// Height holds the stored value, not the floored one, so a record always
// reproduces the Coordinate it came from.
type CoordinateRecord struct {
	Vec    []float64 `json:"vec"`
	Error  float64   `json:"error"`
	Height float64   `json:"height"`
}

// IsValid reports whether every value in r is finite.
func (r CoordinateRecord) IsValid() bool {
	for _, v := range r.Vec {
		if !isFinite(v) {
			return false
		}
	}
	return isFinite(r.Error) && isFinite(r.Height)
}

// Record returns the wire form of c.
func (c Coordinate[V]) Record() CoordinateRecord {
	return CoordinateRecord{
		Vec:    c.vec.Components(),
		Error:  c.errorEstimate,
		Height: c.height,
	}
}

// FromRecord rebuilds a Coordinate from its wire form. It fails with a
// *vector.ErrDimensionMismatch when r has the wrong number of components.
func FromRecord[V vector.Vector[V]](r CoordinateRecord) (Coordinate[V], error) {
	var zero V
	vec, err := zero.FromComponents(r.Vec)
	if err != nil {
		return Coordinate[V]{}, err
	}
	return NewCoordinate(vec, r.Error, r.Height), nil
}

// MarshalJSON implements json.Marshaler.
func (c Coordinate[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Record())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coordinate[V]) UnmarshalJSON(data []byte) error {
	var r CoordinateRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	decoded, err := FromRecord[V](r)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
