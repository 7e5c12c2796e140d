package gate

import "regexp"

// secretPatterns are coarse signatures for credential-shaped strings. This is
// a structural predicate, not a security scanner: it catches obviously
// embedded key material in a policy-gated field so a careless caller does
// not accidentally persist one in a snapshot or ledger entry.
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`-----BEGIN (RSA |EC |OPENSSH )?PRIVATE KEY-----`),
	regexp.MustCompile(`(?i)\b(api|secret)_?key["'=:\s]{1,3}[A-Za-z0-9/+]{20,}`),
	regexp.MustCompile(`ghp_[A-Za-z0-9]{36}`),
}

// containsSecret reports whether any string value in fields matches a known
// secret signature. Nested maps and slices are walked; non-string leaves are
// ignored.
func containsSecret(fields map[string]any) bool {
	for _, v := range fields {
		if walkForSecret(v) {
			return true
		}
	}
	return false
}

func walkForSecret(v any) bool {
	switch val := v.(type) {
	case string:
		return stringLooksLikeSecret(val)
	case map[string]any:
		for _, inner := range val {
			if walkForSecret(inner) {
				return true
			}
		}
	case []any:
		for _, inner := range val {
			if walkForSecret(inner) {
				return true
			}
		}
	}
	return false
}

func stringLooksLikeSecret(s string) bool {
	for _, p := range secretPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
