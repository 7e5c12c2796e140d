// Package rng provides the module's seeded pseudo-random stream: a splitmix64
// generator used by iterative algorithms and tie-break supplements. It is
// deliberately not math/rand — a fixed, single algorithm here means the
// stream is reproducible byte-for-byte across machines and across target
// languages implementing the same specification, which math/rand's global
// state and version-dependent internals cannot promise.
//
// The stream is thread-local: a Source is never shared between concurrent
// kernel invocations. Where an algorithm wants independent sub-streams (for
// parallel iteration), the seed is split deterministically by sub-index via
// Split, never by OS scheduling order.
package rng
