// Package trace builds the immutable decision trace that binds a kernel
// evaluation's inputs, algorithm parameters, and outputs under a single
// fingerprint.
//
// Fingerprint scope is frozen: {algorithm, actions, states, outcomes,
// params_subset, result_core}, where params_subset holds only the
// parameters that influence the selected algorithm and result_core is
// {recommended_action, ranking, scores}. Wall clock, hostnames, and tool
// versions beyond the protocol/contract identifiers never enter the
// fingerprint; a trace is sealed once built and must never be mutated
// afterward.
package trace
