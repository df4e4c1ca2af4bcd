// Package errkind defines the error taxonomy shared by every Magika
// component: a small closed set of machine-readable kinds, wrapped with
// the standard library's %w so callers can still unwrap to the cause.
package errkind

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category. It is deliberately a small
// closed set: configuration errors are fatal at construction. Per-request
// errors are returned as an error from the single-input Identify* calls;
// only missing and unreadable paths are reported through Result.Status
// there, and IdentifyPaths reports any per-path error as StatusUnknown.
type Kind int

const (
	// Unknown is the zero value; it should never be constructed directly.
	Unknown Kind = iota
	// InvalidConfig marks a ModelConfig that failed validation on load.
	InvalidConfig
	// MissingLabel marks a label with no corresponding catalog entry.
	MissingLabel
	// ModelConfigMismatch marks a backend whose output dimension disagrees
	// with the configured target label space.
	ModelConfigMismatch
	// FileNotFound marks a path that does not exist.
	FileNotFound
	// PermissionDenied marks a path that exists but could not be read.
	PermissionDenied
	// IOError marks any other I/O failure encountered while sampling bytes.
	IOError
	// ModelRuntimeError marks a failure inside the neural evaluator itself.
	ModelRuntimeError
)

func (k Kind) String() string {
	switch k {
	case InvalidConfig:
		return "invalid-config"
	case MissingLabel:
		return "missing-label"
	case ModelConfigMismatch:
		return "model-config-mismatch"
	case FileNotFound:
		return "file_not_found_error"
	case PermissionDenied:
		return "permission_error"
	case IOError:
		return "io-error"
	case ModelRuntimeError:
		return "model-runtime-error"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every component in this
// module. It carries a Kind so callers can classify a failure without
// string-matching the message.
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs an *Error of the given kind with a message, optionally
// wrapping a cause.
func New(k Kind, msg string, cause error) *Error {
	return &Error{Kind: k, msg: msg, cause: cause}
}

// Newf is New with a formatted message.
func Newf(k Kind, cause error, format string, args ...any) *Error {
	return New(k, fmt.Sprintf(format, args...), cause)
}

// Is reports whether err carries the given Kind.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// KindOf extracts the Kind carried by err, or Unknown if err is not (or
// does not wrap) an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
