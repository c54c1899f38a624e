package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoints(t *testing.T) {
	rng := NewRNG(4711)

	p := rng.Points(8, 3, 10)

	assert.Equal(t, 8, len(p))
	assert.Equal(t, 3, len(p[0]))
	for _, point := range p {
		for _, v := range point {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 10.0)
		}
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)

	first := rng.Float64()
	rng.Float64()
	rng.Reset()

	assert.Equal(t, first, rng.Float64())
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestFillUniform(t *testing.T) {
	rng := NewRNG(1)

	dst := make([]float64, 64)
	rng.FillUniform(dst)

	for _, v := range dst {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestJitter(t *testing.T) {
	rng := NewRNG(7)

	for range 100 {
		d := rng.Jitter(100*time.Millisecond, 0.1)
		assert.GreaterOrEqual(t, d, 90*time.Millisecond)
		assert.LessOrEqual(t, d, 110*time.Millisecond)
	}
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 5*time.Second, Distance([]float64{0, 0}, []float64{3, 4}))
	assert.Equal(t, time.Duration(0), Distance([]float64{1, 1}, []float64{1, 1}))
}

func TestEstimationRatio(t *testing.T) {
	assert.InDelta(t, 1.0, EstimationRatio(time.Second, time.Second), 1e-12)
	assert.InDelta(t, 2.0, EstimationRatio(2*time.Second, time.Second), 1e-12)
	assert.True(t, AssertWithin(t, time.Second, 1050*time.Millisecond, 0.115))
}

func TestConcurrentUse(t *testing.T) {
	rng := NewRNG(42)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = rng.Float64()
				_ = rng.Intn(10)
			}
		}()
	}
	wg.Wait()
}
