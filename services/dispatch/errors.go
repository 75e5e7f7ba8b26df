package dispatch

import (
	"errors"
	"fmt"
)

// Error codes for the dispatch engine's failure taxonomy.
const (
	CodeNotFound    = "notFound"    // caller's input referenced nothing
	CodeValidation  = "validation"  // malformed or inconsistent input
	CodeCapability  = "capability"  // provider cannot perform the service
	CodeConflict    = "conflict"    // operation not applicable to current state
	CodeEmptyResult = "emptyResult" // zero actionable outcomes
)

// DispatchError is a typed engine failure.
type DispatchError struct {
	Code    string
	Message string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...interface{}) error {
	return &DispatchError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return newError(CodeNotFound, format, args...)
}

func NewValidationError(format string, args ...interface{}) error {
	return newError(CodeValidation, format, args...)
}

func NewCapabilityError(format string, args ...interface{}) error {
	return newError(CodeCapability, format, args...)
}

func NewConflictError(format string, args ...interface{}) error {
	return newError(CodeConflict, format, args...)
}

func NewEmptyResultError(format string, args ...interface{}) error {
	return newError(CodeEmptyResult, format, args...)
}

// HasCode reports whether err is a DispatchError carrying the given code.
func HasCode(err error, code string) bool {
	var de *DispatchError
	return errors.As(err, &de) && de.Code == code
}
