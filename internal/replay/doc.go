// Package replay re-executes a stored snapshot and classifies the outcome
// as PASS, DRIFT, MISMATCH, or DEGRADED. It holds no long-lived graph;
// every Verify call is self-contained given a snapshot and the current
// engine binary's kernel.
package replay
