package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"

	"decisionengine/internal/canon"
)

// Digest is a lowercase hex-encoded SHA-256 fingerprint.
type Digest string

// Compute hashes already-canonical bytes. Callers that have run a value
// through canon.Canonicalize themselves should use this to avoid a second
// canonicalization pass.
func Compute(canonicalBytes []byte) Digest {
	sum := sha256.Sum256(canonicalBytes)
	return Digest(hex.EncodeToString(sum[:]))
}

// Of canonicalizes v and returns its fingerprint in one step. This is the
// entry point nearly every caller wants; Compute exists for the few places
// that already hold canonical bytes.
func Of(v any) (Digest, error) {
	b, err := canon.Canonicalize(v)
	if err != nil {
		return "", err
	}
	return Compute(b), nil
}

// Verify reports whether v's current fingerprint matches want.
func Verify(v any, want Digest) (bool, error) {
	got, err := Of(v)
	if err != nil {
		return false, err
	}
	return got == want, nil
}

func (d Digest) String() string { return string(d) }

// Empty reports whether d carries no digest, distinguishing an unset
// fingerprint from an all-zero one (which SHA-256 of any real input
// cannot produce).
func (d Digest) Empty() bool { return d == "" }
