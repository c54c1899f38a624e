package vector

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Vector is the set of operations the Vivaldi model needs from a point in N
// dimensional Euclidean space.
//
// V is the implementing type itself, which keeps the arithmetic statically
// typed:
//
//	func center[V vector.Vector[V]](a, b V) V { return a.Add(b).Div(2) }
type Vector[V any] interface {
	// Add returns the componentwise sum of the receiver and o.
	Add(o V) V

	// AddScalar returns a copy with s added to every component.
	AddScalar(s float64) V

	// Sub returns the componentwise difference of the receiver and o.
	Sub(o V) V

	// Mul scales every component by s.
	Mul(s float64) V

	// Div divides every component by s. Dividing by zero is the caller's
	// responsibility.
	Div(s float64) V

	// Magnitude returns the Euclidean norm.
	Magnitude() Magnitude

	// Random returns a vector whose components are drawn independently and
	// uniformly from [0, 1) using rng. The receiver value is not used.
	Random(rng RandSource) V

	// Dim returns the number of components.
	Dim() int

	// Components returns a copy of the components.
	Components() []float64

	// FromComponents builds a vector of the receiver's type from c.
	FromComponents(c []float64) (V, error)
}

// Magnitude is the length of a vector.
type Magnitude float64

// RandSource supplies uniformly distributed values in [0, 1).
//
// *math/rand.Rand and *math/rand/v2.Rand both satisfy it.
type RandSource interface {
	Float64() float64
}

// NewRandSource returns a PCG backed RandSource seeded with seed.
// The returned source is not safe for concurrent use.
func NewRandSource(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ErrDimensionMismatch is returned when a component slice does not match the
// dimensionality of the target vector type.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// magnitude folds the squares left to right so every implementation rounds
// identically.
func magnitude(c []float64) Magnitude {
	sum := 0.0
	for _, v := range c {
		sum += v * v
	}
	return Magnitude(math.Sqrt(sum))
}
