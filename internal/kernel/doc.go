// Package kernel implements the algorithm kernel: pure functions that score
// and rank a decision.DecisionSpec's actions under one of the closed set of
// decision criteria in decision.Algorithm.
//
// Evaluate is the only entry point. It is pure and single-threaded per
// invocation: nothing in this package retains mutable state across calls,
// and nothing here touches ambient I/O, logging, or the clock. Callers may
// invoke Evaluate from multiple goroutines concurrently as long as no two
// invocations share a *rng.Source.
package kernel
