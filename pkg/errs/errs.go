// Package errs defines the error taxonomy shared across the ingestion
// pipeline. Every fallible operation returns one of these sentinel-wrapped
// kinds so callers can branch with errors.Is/errors.As instead of string
// matching, mirroring how the teacher threads context.Context and slog
// through the pipeline rather than relying on panics for control flow.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies a class of failure. Kinds are checked with Is below, or
// with errors.Is against another *Error of the same Kind (see Error.Is).
type Kind int

const (
	// InputNotFound: the requested source does not exist. User-visible, not retried.
	InputNotFound Kind = iota
	// UnsupportedFormat: no reader matches the source. User-visible, not retried.
	UnsupportedFormat
	// MalformedSource: the reader produced partial text with warnings. Recovered locally.
	MalformedSource
	// ParseWarning: heading hierarchy issues, table demotions. Recovered locally.
	ParseWarning
	// ChunkingInvariantViolation: a strategy would exceed 1.15x MaxChunkSize with no legal split.
	ChunkingInvariantViolation
	// LlmUnavailable: the injected text-completion/vision service could not be reached.
	LlmUnavailable
	// LlmTimeout: an LLM call exceeded its per-call or per-batch timeout.
	LlmTimeout
	// ResourceExhausted: memory budget exceeded or a queue saturated.
	ResourceExhausted
	// Cancelled: the caller's context was cancelled.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case InputNotFound:
		return "input_not_found"
	case UnsupportedFormat:
		return "unsupported_format"
	case MalformedSource:
		return "malformed_source"
	case ParseWarning:
		return "parse_warning"
	case ChunkingInvariantViolation:
		return "chunking_invariant_violation"
	case LlmUnavailable:
		return "llm_unavailable"
	case LlmTimeout:
		return "llm_timeout"
	case ResourceExhausted:
		return "resource_exhausted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the concrete error type carrying a Kind, a message, and an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, SomeKind) style checks via a sentinel kind wrapper;
// see Is below for the actual comparison used by callers.
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return e.Kind == te.Kind
	}
	return false
}

// New constructs an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an *Error of the given kind, wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether err is (or wraps) an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// KindOf extracts the Kind from err, returning ok=false if err is not (and
// does not wrap) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}
