// Package vivaldi implements the Vivaldi network coordinate system.
//
// Every node keeps a position in a low-dimensional metric space such that
// the distance between two positions approximates the round-trip time
// between the nodes. Positions are refined from RTT samples the application
// already collects (e.g. piggybacked on RPC responses); the package never
// performs network I/O itself.
//
// # Quick Start
//
//	model := vivaldi.NewModel[vector.Dimension3]()
//
//	// Attach model.Coordinate() to outgoing messages. When a response
//	// arrives, feed the remote coordinate and the measured RTT back:
//	if err := model.Observe(remoteCoord, rtt); err != nil {
//	    // rtt was zero or negative
//	}
//
//	// Estimate the RTT to any node whose coordinate is known, including
//	// nodes never measured directly:
//	est := vivaldi.EstimateRTT(model.Coordinate(), otherCoord)
//
// # Coordinates
//
// A Coordinate combines a Euclidean position, an error estimate and a
// height. The height models latency no Euclidean position can explain, such
// as an access link, and is never reported below MinHeight.
//
// # Concurrency
//
// Model is a plain value without locking. Client wraps a Model for
// concurrent use and adds the safeguards a long-running agent needs: RTT
// range checks, a per-node median latency filter and automatic resets when
// an update produces invalid values.
//
// # Debug Assertions
//
// Building with the vivaldi_debug tag enables an internal consistency check
// that every direction used by the update rule has unit length.
package vivaldi
