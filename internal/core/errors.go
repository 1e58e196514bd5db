package core

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is a stable, UI-facing identifier for a client-fixable failure.
type ErrorCode string

const (
	CodeMissingName       ErrorCode = "MissingName"
	CodeMissingDepartment ErrorCode = "MissingDepartment"
	CodeMissingDate       ErrorCode = "MissingDate"
	CodeInvalidDate       ErrorCode = "InvalidDate"
	CodePastDate          ErrorCode = "PastDate"
	CodeDateDisabled      ErrorCode = "DateDisabled"
	CodeEmptyOrder        ErrorCode = "EmptyOrder"
	CodeInvalidItem       ErrorCode = "InvalidItem"
	CodeDuplicateOrder    ErrorCode = "DuplicateOrder"
	CodeInvalidDish       ErrorCode = "InvalidDish"
	CodeInvalidItems      ErrorCode = "InvalidItems"
	CodeInvalidConfig     ErrorCode = "InvalidConfig"
	CodeInvalidRange      ErrorCode = "InvalidRange"
	CodeNoData            ErrorCode = "NoData"
	CodeInvalidBody       ErrorCode = "InvalidBody"
)

// ValidationError is returned for anything the caller can fix by changing input.
type ValidationError struct {
	Code    ErrorCode
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError.
func Invalid(code ErrorCode, format string, args ...any) error {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError, and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// ErrNotFound marks lookups of records that do not exist.
var ErrNotFound = errors.New("not found")

// StorageError wraps a failure of the persistence layer. It is fatal to the
// current operation and never shown to clients verbatim.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError. A nil err stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// HTTPStatus maps an error from any service to the status a handler should send.
func HTTPStatus(err error) int {
	if _, ok := IsValidation(err); ok {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
