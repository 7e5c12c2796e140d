// Package registry holds the process-level, immutable metadata describing
// the closed set of decision algorithms: the human-facing name, whether the
// criterion maximizes or minimizes its score, which AlgorithmParams fields
// it consumes, and whether it is seed-free.
//
// The registry is built once at package init and never mutated afterward;
// it exists for callers (CLI help text, gate policy validation) that need
// to describe an algorithm without importing the kernel's scoring code.
package registry
