package canon

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// Canonicalize maps a JSON-like value to its unique canonical byte sequence.
//
// Accepted shapes: nil, bool, string, float64, float32, int, int64,
// map[string]any, map[string]float64, map[string]string, []any, []string,
// and anything implementing Canonical (for callers that want to hand-roll
// a node, mirroring ExecutionTrace.MarshalJSON in sibling packages).
func Canonicalize(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Canonical is implemented by values that know how to append their own
// canonical encoding. Useful for sealed domain types that want to avoid a
// reflection-driven map[string]any conversion.
type Canonical interface {
	CanonicalValue() any
}

func encode(buf *bytes.Buffer, v any, path string) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case string:
		return encodeString(buf, t)
	case float64:
		s, err := formatNumber(t)
		if err != nil {
			if e, ok := err.(*Error); ok {
				e.Path = path
			}
			return err
		}
		buf.WriteString(s)
		return nil
	case float32:
		return encode(buf, float64(t), path)
	case int:
		return encode(buf, float64(t), path)
	case int64:
		return encode(buf, float64(t), path)
	case map[string]any:
		return encodeObject(buf, t, path)
	case map[string]float64:
		conv := make(map[string]any, len(t))
		for k, v := range t {
			conv[k] = v
		}
		return encodeObject(buf, conv, path)
	case map[string]string:
		conv := make(map[string]any, len(t))
		for k, v := range t {
			conv[k] = v
		}
		return encodeObject(buf, conv, path)
	case []any:
		return encodeArray(buf, t, path)
	case []string:
		conv := make([]any, len(t))
		for i, s := range t {
			conv[i] = s
		}
		return encodeArray(buf, conv, path)
	case []float64:
		conv := make([]any, len(t))
		for i, f := range t {
			conv[i] = f
		}
		return encodeArray(buf, conv, path)
	case Canonical:
		return encode(buf, t.CanonicalValue(), path)
	default:
		return unsupportedType(path, v)
	}
}

func encodeObject(buf *bytes.Buffer, m map[string]any, path string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys) // byte-wise comparison of valid UTF-8 equals code-point order

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(buf, k); err != nil {
			return invalidKey(path, k)
		}
		buf.WriteByte(':')
		childPath := k
		if path != "" {
			childPath = path + "." + k
		}
		if err := encode(buf, m[k], childPath); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, arr []any, path string) error {
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encode(buf, elem, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
	return nil
}

// Equal reports whether a and b canonicalize to byte-equal output.
func Equal(a, b any) (bool, error) {
	ca, err := Canonicalize(a)
	if err != nil {
		return false, err
	}
	cb, err := Canonicalize(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ca, cb), nil
}

// MustCanonicalize panics on error; reserved for tests and fixture generation.
func MustCanonicalize(v any) []byte {
	b, err := Canonicalize(v)
	if err != nil {
		panic(fmt.Sprintf("canon: %v", err))
	}
	return b
}

// String renders the canonical encoding of v as a string, trimming nothing.
func String(v any) (string, error) {
	b, err := Canonicalize(v)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
