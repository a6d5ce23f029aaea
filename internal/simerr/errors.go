// Package simerr defines the typed, programmer-detectable-misuse error
// family for orrery: a code, a message, and an optional wrapped cause,
// exposed as the module's external error interface.
package simerr

import "fmt"

// Code identifies one of the module's error enumerations.
type Code string

const (
	CodeSingularMetric        Code = "SingularMetric"
	CodeChristoffelFailed     Code = "ChristoffelFailed"
	CodeStepFailed            Code = "StepFailed"
	CodeHorizonCrossing       Code = "HorizonCrossing"
	CodeComponentSizeMismatch Code = "ComponentSizeMismatch"
	CodeEntityOutOfRange      Code = "EntityOutOfRange"
	CodePoolAllocFailed       Code = "PoolAllocFailed"
	CodeSaveFormatInvalid     Code = "SaveFormatInvalid"
	CodeSaveVersionMismatch   Code = "SaveVersionMismatch"
)

// Error is the typed error carried by every programmer-detectable-misuse
// failure in the module. Recoverable numeric degradation and boundary
// conditions never produce an *Error — they return sentinel values or
// status enums instead.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new *Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a new *Error wrapping an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Is reports whether target carries the same Code, so callers can use
// errors.Is(err, simerr.ErrSingularMetric) against a wrapped error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Predefined sentinels for errors.Is comparisons.
var (
	ErrSingularMetric        = New(CodeSingularMetric, "metric determinant is zero or near-zero")
	ErrChristoffelFailed     = New(CodeChristoffelFailed, "Christoffel evaluation failed")
	ErrStepFailed            = New(CodeStepFailed, "integration step failed")
	ErrHorizonCrossing       = New(CodeHorizonCrossing, "coordinate crossed an event horizon")
	ErrComponentSizeMismatch = New(CodeComponentSizeMismatch, "component size does not match pool's registered size")
	ErrEntityOutOfRange      = New(CodeEntityOutOfRange, "entity id out of range")
	ErrPoolAllocFailed       = New(CodePoolAllocFailed, "component pool allocation failed")
	ErrSaveFormatInvalid     = New(CodeSaveFormatInvalid, "snapshot has invalid magic or structure")
	ErrSaveVersionMismatch   = New(CodeSaveVersionMismatch, "snapshot version is not supported")
)
