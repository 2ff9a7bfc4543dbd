// Package errors defines the coded errors archdiagram returns.
//
// A [Code] says which kind of thing went wrong so callers can branch on it:
// a bad --format or --direction, a topology that fails validation, an icon
// file that is not there, or Graphviz itself failing. The CLI prints
// [UserMessage] and keeps the code out of the terminal.
//
// Codes come in four families. INVALID_* is rejected input, *_NOT_FOUND is a
// name or path that does not resolve, RENDER_FAILED and WRITE_FAILED come
// from producing output, and INTERNAL_ERROR is everything else.
//
//	err := errors.Wrap(errors.ErrCodeFileNotFound, statErr, "icon %s", path)
//	if errors.Is(err, errors.ErrCodeFileNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidTopology  Code = "INVALID_TOPOLOGY"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidDirection Code = "INVALID_DIRECTION"

	ErrCodeDiagramNotFound Code = "DIAGRAM_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	ErrCodeRender      Code = "RENDER_FAILED"
	ErrCodeWriteOutput Code = "WRITE_FAILED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error pairs a Code with a message and, optionally, the error that caused it.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a printf-style message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is like New but records cause, which stays reachable through
// errors.Is and errors.As from the standard library.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the first *Error found in err's chain carries code.
// Codes of errors wrapped further down are not consulted.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e := find(err); e != nil {
		return e.Code
	}
	return ""
}

// UserMessage is err's text without the leading code.
func UserMessage(err error) string {
	e := find(err)
	if e == nil {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func find(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
