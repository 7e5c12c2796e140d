// Package snapshot is the append-only sink/source for {spec, params,
// result, fingerprint} bundles, keyed by run id. Writes are atomic
// (write-temp-then-rename); reads verify the stored fingerprint against the
// hash of the snapshot's canonical form before returning it, so a
// bit-flipped or hand-edited snapshot is rejected at load time rather than
// silently replayed.
package snapshot
