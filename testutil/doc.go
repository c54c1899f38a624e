// Package testutil provides testing utilities for vivaldi.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random source, helpers for generating
// synthetic topologies and assertions on RTT estimates.
//
// # Random Sources
//
//	rng := testutil.NewRNG(seed)
//	model := vivaldi.NewModel[vector.Dimension3](vivaldi.WithRandSource(rng))
//
// # Estimate Verification
//
//	testutil.AssertWithin(t, trueRTT, vivaldi.EstimateRTT(a, b), 0.115)
package testutil
