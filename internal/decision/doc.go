// Package decision defines the domain models consumed and produced by the
// evaluation kernel.
//
// Design constraints:
//   - No implied fields (e.g., creation timestamps) that could affect determinism.
//   - All fields are explicit and observable.
//   - Structures support exact canonical serialization for fingerprinting.
package decision
