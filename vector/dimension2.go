package vector

// Dimension2 is a 2 dimensional Euclidean vector.
type Dimension2 [2]float64

var _ Vector[Dimension2] = Dimension2{}

// Add implements Vector.
func (v Dimension2) Add(o Dimension2) Dimension2 {
	return Dimension2{v[0] + o[0], v[1] + o[1]}
}

// AddScalar implements Vector.
func (v Dimension2) AddScalar(s float64) Dimension2 {
	return Dimension2{v[0] + s, v[1] + s}
}

// Sub implements Vector.
func (v Dimension2) Sub(o Dimension2) Dimension2 {
	return Dimension2{v[0] - o[0], v[1] - o[1]}
}

// Mul implements Vector.
func (v Dimension2) Mul(s float64) Dimension2 {
	return Dimension2{v[0] * s, v[1] * s}
}

// Div implements Vector.
func (v Dimension2) Div(s float64) Dimension2 {
	return Dimension2{v[0] / s, v[1] / s}
}

// Magnitude implements Vector.
func (v Dimension2) Magnitude() Magnitude {
	return magnitude(v[:])
}

// Random implements Vector.
func (Dimension2) Random(rng RandSource) Dimension2 {
	return Dimension2{rng.Float64(), rng.Float64()}
}

// Dim implements Vector.
func (Dimension2) Dim() int { return 2 }

// Components implements Vector.
func (v Dimension2) Components() []float64 {
	return []float64{v[0], v[1]}
}

// FromComponents implements Vector.
func (Dimension2) FromComponents(c []float64) (Dimension2, error) {
	if len(c) != 2 {
		return Dimension2{}, &ErrDimensionMismatch{Expected: 2, Actual: len(c)}
	}
	return Dimension2{c[0], c[1]}, nil
}
