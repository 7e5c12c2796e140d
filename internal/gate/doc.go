// Package gate applies a resolved policy to a DecisionResult and returns an
// allow/deny verdict with reasons. It is orthogonal to the kernel: it reads a
// result and a caller-supplied policy, never mutates either, and never
// influences the determinism of an evaluation.
//
// Rules are evaluated in the policy's declared order. The first rule that
// fails terminates evaluation and deny wins; if every rule passes, the
// policy's default action decides.
package gate
