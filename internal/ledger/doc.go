// Package ledger persists an audit trail of evaluation runs: the run's
// identity and gate verdict at creation time, and the history of replay
// classifications checked against it afterward. It is purely an ambient
// recordkeeping layer; nothing here participates in kernel determinism, and
// a ledger entry is never consulted to produce a DecisionResult.
//
// Storage layout mirrors the snapshot store's atomic-write contract: one
// run.json per run, written once, and an append-only directory of replay
// check records underneath it.
package ledger
