package errs

import (
	"fmt"
	"strings"
)

// Sentinel errors used as the anchors for errors.Is classification.
// Every concrete error type in this package unwraps to exactly one of them.
var (
	ErrValueIsRequired         = fmt.Errorf("value is required")
	ErrValueIsInvalid          = fmt.Errorf("value is invalid")
	ErrObjectNotFound          = fmt.Errorf("object not found")
	ErrInvalidStatusTransition = fmt.Errorf("invalid status transition")
)

// sanitize collapses newlines in values interpolated into error messages,
// keeping log lines and HTTP error bodies single-line.
func sanitize(value any) string {
	return strings.ReplaceAll(fmt.Sprintf("%s", value), "\n", " ")
}

// ValueIsRequiredError indicates that a required value was missing or empty.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError with an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates that a value was present but not acceptable.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError with an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates that an object could not be located by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the named parameter and identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError with an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), sanitize(e.ID), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidStatusTransitionError indicates that a requested order status change
// is not permitted by the lifecycle transition table. It carries both the
// current and the requested status for error reporting.
type InvalidStatusTransitionError struct {
	From  string
	To    string
	Cause error
}

// NewInvalidStatusTransitionError creates an InvalidStatusTransitionError
// for the given current and requested statuses.
func NewInvalidStatusTransitionError(from, to string) *InvalidStatusTransitionError {
	return &InvalidStatusTransitionError{From: from, To: to}
}

// NewInvalidStatusTransitionErrorWithCause creates an InvalidStatusTransitionError
// with an underlying cause.
func NewInvalidStatusTransitionErrorWithCause(from, to string, cause error) *InvalidStatusTransitionError {
	return &InvalidStatusTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidStatusTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: cannot transition from %s to %s (cause: %s)",
			ErrInvalidStatusTransition, sanitize(e.From), sanitize(e.To), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: cannot transition from %s to %s", ErrInvalidStatusTransition, sanitize(e.From), sanitize(e.To))
}

func (e *InvalidStatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}
