// Package errors defines the error-kind taxonomy shared across the
// core (spec.md §7): NotFound, Upstream, Timeout, Validation and
// Unauthorized. This package defines the kinds and their constructors
// only; it does not wrap or log errors on their way to a caller.
package errors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindUpstream     Kind = "upstream"
	KindTimeout      Kind = "timeout"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
)

// AppError is the core's error envelope. Timeout is treated as
// Upstream for retry-policy purposes (spec.md §7) but keeps its own
// Kind for observability.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

func new_(kind Kind, msg string, cause error) *AppError {
	return &AppError{Kind: kind, Message: msg, Cause: cause}
}

func NotFound(msg string, cause error) *AppError     { return new_(KindNotFound, msg, cause) }
func Upstream(msg string, cause error) *AppError     { return new_(KindUpstream, msg, cause) }
func Timeout(msg string, cause error) *AppError      { return new_(KindTimeout, msg, cause) }
func Validation(msg string, cause error) *AppError   { return new_(KindValidation, msg, cause) }
func Unauthorized(msg string, cause error) *AppError { return new_(KindUnauthorized, msg, cause) }

// Is lets callers use errors.Is(err, errors.KindNotFound) by comparing
// Kind rather than identity — AppError values are rarely sentinels.
func Is(err error, kind Kind) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// IsRetryable reports whether the retry policy in spec.md §5 should
// attempt the operation again: Upstream and Timeout are, the rest
// are not (Validation/Unauthorized/NotFound are never transient).
func IsRetryable(err error) bool {
	return Is(err, KindUpstream) || Is(err, KindTimeout)
}
