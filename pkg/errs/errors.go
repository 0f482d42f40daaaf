// Package errs is the kernel's error taxonomy (spec §7): three kinds,
// each a distinct type so callers can catch by kind with errors.As.
// ArgumentError can wrap an underlying cause (with github.com/pkg/errors'
// WithMessage) and exposes it through Unwrap; OperationError and
// RetryError originate the failure and carry no cause.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// ArgumentError reports that the caller violated the registry
// contract: a duplicate signature, an unknown name on removal, or a
// malformed Operation. Always reported immediately at the offending
// call, never surfaced later.
type ArgumentError struct {
	msg   string
	cause error
}

// NewArgumentError builds an ArgumentError, optionally wrapping cause.
func NewArgumentError(msg string, cause error) *ArgumentError {
	if cause != nil {
		cause = errors.WithMessage(cause, msg)
	}
	return &ArgumentError{msg: msg, cause: cause}
}

func (e *ArgumentError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.msg
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *ArgumentError) Unwrap() error { return e.cause }

// OperationError reports that no implementation matched at dispatch
// time: unknown operation name, wrong arity/shape, or no signature in
// the resolved bucket matched the operands' representations.
type OperationError struct {
	Name string
	msg  string
}

// NewOperationError builds an OperationError for the named operation.
func NewOperationError(name, format string, args ...any) *OperationError {
	return &OperationError{Name: name, msg: fmt.Sprintf(format, args...)}
}

func (e *OperationError) Error() string {
	if e.Name == "" {
		return e.msg
	}
	return fmt.Sprintf("operation %q: %s", e.Name, e.msg)
}

// RetryError reports that a requested retry was refused by policy,
// looped back to an already-attempted profile, or exceeded the retry
// cap. Always reported at the top-level façade call that started the
// retry chain.
type RetryError struct {
	Name string
	msg  string
}

// NewRetryError builds a RetryError for the named operation.
func NewRetryError(name, format string, args ...any) *RetryError {
	return &RetryError{Name: name, msg: fmt.Sprintf(format, args...)}
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("retry of %q refused: %s", e.Name, e.msg)
}
