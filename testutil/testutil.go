package testutil

import (
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe and satisfies vector.RandSource.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// Points generates num points in a dim dimensional cube of the given side
// length. Uses a single backing array for efficiency.
func (r *RNG) Points(num, dim int, side float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)

	for i := range num {
		p := data[i*dim : (i+1)*dim]
		for j := range p {
			p[j] = r.rand.Float64() * side
		}
		points[i] = p
	}

	return points
}

// Jitter returns d scaled by a random factor in [1-frac, 1+frac).
func (r *RNG) Jitter(d time.Duration, frac float64) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := 1 - frac + 2*frac*r.rand.Float64()
	return time.Duration(math.Round(float64(d) * f))
}

// Distance returns the Euclidean distance between a and b as a duration,
// interpreting one unit as one second.
func Distance(a, b []float64) time.Duration {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return time.Duration(math.Round(math.Sqrt(sum) * float64(time.Second)))
}

// EstimationRatio returns |actual / estimate|. A perfect estimate yields 1.
func EstimationRatio(actual, estimate time.Duration) float64 {
	return math.Abs(actual.Seconds() / estimate.Seconds())
}

// AssertWithin asserts that estimate is within maxDiff of actual, measured
// as EstimationRatio in (1-maxDiff, 1+maxDiff).
func AssertWithin(t testing.TB, actual, estimate time.Duration, maxDiff float64) bool {
	t.Helper()

	ratio := EstimationRatio(actual, estimate)
	ok := assert.Less(t, ratio, 1+maxDiff, "estimate %v for %v is too low", estimate, actual)
	return assert.Greater(t, ratio, 1-maxDiff, "estimate %v for %v is too high", estimate, actual) && ok
}
