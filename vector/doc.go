// Package vector provides the Euclidean vector types the Vivaldi model is
// built on.
//
// The model is generic over any type satisfying Vector. Two fixed-size
// implementations are provided:
//
//   - Dimension2: a 2 dimensional vector backed by [2]float64
//   - Dimension3: a 3 dimensional vector backed by [3]float64
//
// Vectors are plain values. Every operation returns a new vector and never
// mutates its operands.
//
// # Usage
//
//	a := vector.Dimension3{1, 2, 3}
//	b := vector.Dimension3{0.5, 1.5, 2.5}
//	dist := a.Sub(b).Magnitude()
package vector
