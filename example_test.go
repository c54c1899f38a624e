package vivaldi_test

import (
	"fmt"
	"time"

	"github.com/hupe1980/vivaldi"
	"github.com/hupe1980/vivaldi/vector"
)

// Example demonstrates two nodes learning the latency between them.
func Example() {
	a := vivaldi.NewModel[vector.Dimension3](vivaldi.WithRandSource(vector.NewRandSource(1)))
	b := vivaldi.NewModel[vector.Dimension3](vivaldi.WithRandSource(vector.NewRandSource(2)))

	rtt := 40 * time.Millisecond
	for range 20 {
		_ = a.Observe(b.Coordinate(), rtt)
		_ = b.Observe(a.Coordinate(), rtt)
	}

	est := vivaldi.EstimateRTT(a.Coordinate(), b.Coordinate())
	fmt.Println(est > 30*time.Millisecond && est < 50*time.Millisecond)
	// Output: true
}

// ExampleClient demonstrates the concurrent client with RTT filtering.
func ExampleClient() {
	client := vivaldi.NewClient[vector.Dimension2](vivaldi.WithMaxRTT(time.Second))

	remote := vivaldi.NewCoordinate(vector.Dimension2{0.01, 0}, 0.5, 0.001)

	_, err := client.Update("node-b", remote, 5*time.Second)
	fmt.Println(err)

	_, err = client.Update("node-b", remote, 20*time.Millisecond)
	fmt.Println(err)
	// Output:
	// round trip time not in valid range, duration 5s is not a positive value less than 1s
	// <nil>
}
