package replay

import "regexp"

// TextNormalizer strips nondeterministic substrings from a free-text field
// (a DEGRADED Reason, an underlying OS error message) before two such
// fields are compared. It exists so DRIFT detection on human-readable text
// does not flag a benign difference like a changed temp-file path or pid as
// a meaningful divergence.
type TextNormalizer struct {
	patterns []*normPattern
}

type normPattern struct {
	regex       *regexp.Regexp
	replacement string
}

// NewTextNormalizer builds a normalizer for the nondeterministic patterns
// that show up in wrapped filesystem and OS errors: timestamps, pids, and
// memory addresses never belong in a fingerprint-bound field, but they can
// legitimately appear in an advisory DEGRADED reason string.
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{
		patterns: []*normPattern{
			{regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?`), "<TIMESTAMP>"},
			{regexp.MustCompile(`\b[Pp][Ii][Dd][:\s]*\d+\b`), "pid <PID>"},
			{regexp.MustCompile(`0x[0-9a-fA-F]{8,16}`), "<ADDR>"},
			{regexp.MustCompile(`/tmp/[^\s"']+`), "<TMPPATH>"},
		},
	}
}

// Normalize applies every pattern in order and returns the scrubbed text.
func (n *TextNormalizer) Normalize(text string) string {
	result := text
	for _, p := range n.patterns {
		result = p.regex.ReplaceAllString(result, p.replacement)
	}
	return result
}

// EqualModuloNoise reports whether a and b are equal once both have been
// normalized, the comparison DRIFT classification uses for free-text fields.
func (n *TextNormalizer) EqualModuloNoise(a, b string) bool {
	return n.Normalize(a) == n.Normalize(b)
}
