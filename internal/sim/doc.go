// Package sim runs Vivaldi models against a synthetic network with known
// round-trip times. It backs the simulate command and the convergence tests.
package sim
