//go:build vivaldi_debug

package vivaldi

import (
	"fmt"
	"math"
)

// assertUnit panics when a vector that must have length 1 does not.
// A failure points at a broken Vector implementation.
func assertUnit(mag float64) {
	if math.Abs(1.0-mag) >= floatZero {
		panic(fmt.Sprintf("vivaldi: unit vector has magnitude %v", mag))
	}
}
