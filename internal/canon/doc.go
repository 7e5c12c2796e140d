// Package canon implements canonical JSON: a deterministic byte encoding of
// JSON-like values such that two semantically equivalent values produce
// byte-equal output in every target language.
//
// Rules (frozen; do not adjust without a contract_version bump):
//   - Object keys sorted by lexicographic order of Unicode code points.
//   - Strings are UTF-8; only the control set and quote/backslash are escaped.
//   - Booleans/null use their canonical literals.
//   - Integers that fit a signed 64-bit range render without a fraction.
//   - Non-integer finite floats round to 10 decimal places, shortest
//     non-scientific form, with -0 normalized to 0.
//   - Arrays preserve order. No insignificant whitespace.
//
// NaN and +/-Inf are rejected with ErrInvalidNumeric; non-string object keys
// are rejected with ErrInvalidKey.
package canon
