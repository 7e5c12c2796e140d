package decision

import (
	"errors"
	"fmt"
)

// Kind is the stable, machine-readable error taxonomy the kernel and its
// neighbors report against. Kind is deliberately not a Go error type itself:
// callers match on it via errors.Is against the sentinels below, never by
// string-comparing Error().
type Kind string

const (
	KindInvalidInput        Kind = "InvalidInput"
	KindInvalidNumeric      Kind = "InvalidNumeric"
	KindInvalidParams       Kind = "InvalidParams"
	KindMissingOutcome      Kind = "MissingOutcome"
	KindAlgorithmError      Kind = "AlgorithmError"
	KindDeterminismMismatch Kind = "DeterminismMismatch"
	KindDegraded            Kind = "Degraded"
)

var (
	ErrInvalidInput        = errors.New(string(KindInvalidInput))
	ErrInvalidNumeric      = errors.New(string(KindInvalidNumeric))
	ErrInvalidParams       = errors.New(string(KindInvalidParams))
	ErrMissingOutcome      = errors.New(string(KindMissingOutcome))
	ErrAlgorithmError      = errors.New(string(KindAlgorithmError))
	ErrDeterminismMismatch = errors.New(string(KindDeterminismMismatch))
	ErrDegraded            = errors.New(string(KindDegraded))
)

func sentinelFor(k Kind) error {
	switch k {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindInvalidNumeric:
		return ErrInvalidNumeric
	case KindInvalidParams:
		return ErrInvalidParams
	case KindMissingOutcome:
		return ErrMissingOutcome
	case KindAlgorithmError:
		return ErrAlgorithmError
	case KindDeterminismMismatch:
		return ErrDeterminismMismatch
	case KindDegraded:
		return ErrDegraded
	default:
		return ErrAlgorithmError
	}
}

// Error is the structured failure type surfaced by the kernel and its
// neighbors. It is never logged to an ambient sink by the kernel itself
// (callers decide); it carries everything a machine consumer needs without
// interpolating English into Details.
type Error struct {
	Kind    Kind
	Code    string         // stable machine-readable code, e.g. "spec.duplicate_action"
	Message string         // one-line human summary
	Details map[string]any // structured context, never free text meant for parsing
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Code == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s[%s]: %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return sentinelFor(e.Kind)
}

func newError(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches structured context and returns the same error for chaining.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

func NewInvalidInput(code, format string, args ...any) *Error {
	return newError(KindInvalidInput, code, format, args...)
}

func NewInvalidNumeric(code, format string, args ...any) *Error {
	return newError(KindInvalidNumeric, code, format, args...)
}

func NewInvalidParams(code, format string, args ...any) *Error {
	return newError(KindInvalidParams, code, format, args...)
}

func NewMissingOutcome(code, format string, args ...any) *Error {
	return newError(KindMissingOutcome, code, format, args...)
}

func NewAlgorithmError(code, format string, args ...any) *Error {
	return newError(KindAlgorithmError, code, format, args...)
}

func NewDeterminismMismatch(code, format string, args ...any) *Error {
	return newError(KindDeterminismMismatch, code, format, args...)
}

func NewDegraded(code, format string, args ...any) *Error {
	return newError(KindDegraded, code, format, args...)
}
