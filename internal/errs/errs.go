// Package errs holds the coded errors shared by the task store, its codecs
// and the persistence adapters.
package errs

import (
	"errors"
	"fmt"
)

// Code classifies an error so callers can react without string matching.
type Code string

const (
	CodeParse        Code = "PARSE"
	CodeFormat       Code = "FORMAT"
	CodeInvalidOrder Code = "INVALID_ORDER"
	CodePersist      Code = "PERSIST"
)

// Error is a classified error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds a classified error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap classifies an existing error.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Parse reports import input that is not syntactically valid.
func Parse(err error) *Error {
	return Wrap(CodeParse, "malformed import payload", err)
}

// Format reports import input that parsed but is not a sequence of records.
func Format(got string) *Error {
	return New(CodeFormat, fmt.Sprintf("import payload must be a list of tasks, got %s", got))
}

// InvalidOrder reports a reorder request that is not a permutation of the
// current ids.
func InvalidOrder(reason string) *Error {
	return New(CodeInvalidOrder, "invalid order: "+reason)
}

// Persist reports a durable write that failed while memory state stayed valid.
func Persist(err error) *Error {
	return Wrap(CodePersist, "tasks not saved", err)
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
