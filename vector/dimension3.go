package vector

// Dimension3 is a 3 dimensional Euclidean vector.
type Dimension3 [3]float64

var _ Vector[Dimension3] = Dimension3{}

// Add implements Vector.
func (v Dimension3) Add(o Dimension3) Dimension3 {
	return Dimension3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// AddScalar implements Vector.
func (v Dimension3) AddScalar(s float64) Dimension3 {
	return Dimension3{v[0] + s, v[1] + s, v[2] + s}
}

// Sub implements Vector.
func (v Dimension3) Sub(o Dimension3) Dimension3 {
	return Dimension3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Mul implements Vector.
func (v Dimension3) Mul(s float64) Dimension3 {
	return Dimension3{v[0] * s, v[1] * s, v[2] * s}
}

// Div implements Vector.
func (v Dimension3) Div(s float64) Dimension3 {
	return Dimension3{v[0] / s, v[1] / s, v[2] / s}
}

// Magnitude implements Vector.
func (v Dimension3) Magnitude() Magnitude {
	return magnitude(v[:])
}

// Random implements Vector.
func (Dimension3) Random(rng RandSource) Dimension3 {
	return Dimension3{rng.Float64(), rng.Float64(), rng.Float64()}
}

// Dim implements Vector.
func (Dimension3) Dim() int { return 3 }

// Components implements Vector.
func (v Dimension3) Components() []float64 {
	return []float64{v[0], v[1], v[2]}
}

// FromComponents implements Vector.
func (Dimension3) FromComponents(c []float64) (Dimension3, error) {
	if len(c) != 3 {
		return Dimension3{}, &ErrDimensionMismatch{Expected: 3, Actual: len(c)}
	}
	return Dimension3{c[0], c[1], c[2]}, nil
}
