package vivaldi

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidRTT is returned when a round-trip time is zero or negative.
	ErrInvalidRTT = errors.New("rtt must be positive")

	// ErrInvalidCoordinate is returned when a coordinate holds NaN or
	// infinite values.
	ErrInvalidCoordinate = errors.New("coordinate is invalid")

	// ErrNotFound is returned when no coordinate is known for a node.
	ErrNotFound = errors.New("coordinate not found")
)

// ErrRTTOutOfRange indicates a round-trip time outside (0, Max].
//
// It matches ErrInvalidRTT with errors.Is.
type ErrRTTOutOfRange struct {
	RTT time.Duration
	Max time.Duration
}

func (e *ErrRTTOutOfRange) Error() string {
	return fmt.Sprintf("round trip time not in valid range, duration %v is not a positive value less than %v", e.RTT, e.Max)
}

func (e *ErrRTTOutOfRange) Unwrap() error { return ErrInvalidRTT }
