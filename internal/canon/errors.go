package canon

import (
	"errors"
	"fmt"

	"decisionengine/internal/decision"
)

// ErrInvalidKey is returned when an object to canonicalize carries a
// non-string key. decision.ErrInvalidNumeric is reused for NaN/Inf so callers
// can match on a single sentinel across the canonicalizer and the kernel.
var ErrInvalidKey = errors.New("InvalidKey")

// Error is the structured failure raised by the canonicalizer.
type Error struct {
	kind    error
	Message string
	Path    string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (at %s)", e.Message, e.Path)
}

func (e *Error) Unwrap() error { return e.kind }

func invalidNumeric(path string, f float64) error {
	return &Error{kind: decision.ErrInvalidNumeric, Message: fmt.Sprintf("non-finite number %v is not canonicalizable", f), Path: path}
}

func invalidKey(path string, key any) error {
	return &Error{kind: ErrInvalidKey, Message: fmt.Sprintf("object key %#v is not a string", key), Path: path}
}

func unsupportedType(path string, v any) error {
	return &Error{kind: ErrInvalidKey, Message: fmt.Sprintf("unsupported type %T for canonicalization", v), Path: path}
}
