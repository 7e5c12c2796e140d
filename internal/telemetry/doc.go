// Package telemetry is the ambient logging and metrics layer: structured
// logging via go.uber.org/zap and a dedicated Prometheus registry via
// github.com/prometheus/client_golang. It is wired only into the CLI driver
// and the file-backed snapshot/ledger adapters.
//
// The kernel, canon, fingerprint, trace, and replay packages never import
// this package: they return structured errors and results and let the
// caller decide what, if anything, to log or count.
package telemetry
