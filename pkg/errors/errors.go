// Package errors defines the coded errors ganttline reports.
//
// Every failure a user can act on carries a [Code]. Codes fall into classes:
// bad input (flags, formats, config), task file problems found by
// validation, missing resources, and internal faults. The CLI maps the
// class to a process exit status through [ExitCode].
//
//	err := errors.New(errors.ErrCodeDuplicateID, "duplicate task id %q", id)
//	if errors.Is(err, errors.ErrCodeDuplicateID) {
//	    ...
//	}
//
// Validation joins several problems with the standard errors.Join; [Is] and
// [Codes] look through joined errors as well as wrapped ones.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	// Input
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"
	ErrCodeInvalidViewMode Code = "INVALID_VIEW_MODE"
	ErrCodeInvalidVizType  Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Task file
	ErrCodeInvalidDate   Code = "INVALID_DATE"
	ErrCodeInvertedRange Code = "INVERTED_RANGE"
	ErrCodeDuplicateID   Code = "DUPLICATE_ID"
	ErrCodeEmptyID       Code = "EMPTY_ID"
	ErrCodeCycle         Code = "CYCLE"

	// Lookup
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeTaskNotFound Code = "TASK_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Class groups codes by who has to fix the problem.
type Class int

const (
	ClassUnknown Class = iota
	ClassInput
	ClassTask
	ClassNotFound
	ClassInternal
)

var classes = map[Code]Class{
	ErrCodeInvalidInput:    ClassInput,
	ErrCodeInvalidFormat:   ClassInput,
	ErrCodeInvalidStyle:    ClassInput,
	ErrCodeInvalidViewMode: ClassInput,
	ErrCodeInvalidVizType:  ClassInput,
	ErrCodeInvalidPath:     ClassInput,
	ErrCodeInvalidConfig:   ClassInput,
	ErrCodeInvalidDate:     ClassTask,
	ErrCodeInvertedRange:   ClassTask,
	ErrCodeDuplicateID:     ClassTask,
	ErrCodeEmptyID:         ClassTask,
	ErrCodeCycle:           ClassTask,
	ErrCodeNotFound:        ClassNotFound,
	ErrCodeTaskNotFound:    ClassNotFound,
	ErrCodeFileNotFound:    ClassNotFound,
	ErrCodeInternal:        ClassInternal,
	ErrCodeUnsupported:     ClassInternal,
}

// Class returns the class of c, or ClassUnknown for unregistered codes.
func (c Code) Class() Class { return classes[c] }

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error that keeps cause reachable through errors.Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's tree has the given code.
func Is(err error, code Code) bool {
	for _, c := range Codes(err) {
		if c == code {
			return true
		}
	}
	return false
}

// Codes lists the codes found in err's tree in depth-first order, including
// every branch of a joined error.
func Codes(err error) []Code {
	var out []Code
	var visit func(error)
	visit = func(err error) {
		if err == nil {
			return
		}
		if e, ok := err.(*Error); ok {
			out = append(out, e.Code)
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				visit(inner)
			}
		case interface{ Unwrap() error }:
			visit(u.Unwrap())
		}
	}
	visit(err)
	return out
}

// Split returns the errors joined in err, err itself when it is not a
// join, or nil for a nil err. It does not descend into nested joins.
func Split(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// GetCode returns the first code in err's chain, or "" if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the first *Error in err's chain
// without its code prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Exit statuses returned by [ExitCode].
const (
	ExitFailure  = 1
	ExitUsage    = 2
	ExitTaskFile = 3
	ExitNotFound = 4
)

// ExitCode maps err to a process exit status: 0 for nil, a class-specific
// status for coded errors and [ExitFailure] otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCode(err).Class() {
	case ClassInput:
		return ExitUsage
	case ClassTask:
		return ExitTaskFile
	case ClassNotFound:
		return ExitNotFound
	default:
		return ExitFailure
	}
}
