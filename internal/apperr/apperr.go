// Package apperr defines the error taxonomy shared by every analysis
// framework. Domain operations return *Error values; the tool layer turns
// them into structured failure results instead of transport errors.
package apperr

import (
	"errors"
	"fmt"
)

// Kind groups error codes into the broad failure families a caller can act on.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindValidation       Kind = "validation"
	KindUnsupported      Kind = "unsupported"
	KindNoData           Kind = "no_data"
	KindUnknownOperation Kind = "unknown_operation"
	KindInternal         Kind = "internal"
)

// Code is a stable, machine-checkable error identifier.
type Code string

const (
	NotFoundCode         Code = "NOT_FOUND"
	InvalidArgument      Code = "INVALID_ARGUMENT"
	InvalidLevel         Code = "INVALID_LEVEL"
	LevelNotReady        Code = "LEVEL_NOT_READY"
	AlreadyAnswered      Code = "ALREADY_ANSWERED"
	InvalidTechnique     Code = "INVALID_TECHNIQUE"
	InvalidScore         Code = "INVALID_SCORE"
	InvalidCategory      Code = "INVALID_CATEGORY"
	InvalidRating        Code = "INVALID_RATING"
	InvalidElement       Code = "INVALID_ELEMENT"
	InvalidSeverity      Code = "INVALID_SEVERITY"
	SameElement          Code = "SAME_ELEMENT"
	UnsupportedFramework Code = "UNSUPPORTED_FRAMEWORK"
	NoRisks              Code = "NO_RISKS"
	NoData               Code = "NO_DATA"
	UnknownTool          Code = "UNKNOWN_TOOL"
	Internal             Code = "INTERNAL"
)

// Error is an analysis failure with a kind, a stable code and a readable message.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	cause   error
}

// New creates an Error with a formatted message.
func New(kind Kind, code Code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing analysis or session.
func NotFound(what, id string) *Error {
	return New(KindNotFound, NotFoundCode, "%s %q not found", what, id)
}

// Validation reports an out-of-range or malformed argument.
func Validation(code Code, format string, args ...any) *Error {
	return New(KindValidation, code, format, args...)
}

// Wrap converts an unexpected error into an INTERNAL failure.
func Wrap(cause error, message string) *Error {
	return &Error{Kind: KindInternal, Code: Internal, Message: message, cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	ae, ok := As(err)
	return ok && ae.Code == code
}

// CodeOf returns the code carried by err, or INTERNAL for foreign errors.
func CodeOf(err error) Code {
	if ae, ok := As(err); ok {
		return ae.Code
	}
	return Internal
}
