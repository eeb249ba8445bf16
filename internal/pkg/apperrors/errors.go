package apperrors

import (
	"errors"
	"fmt"

	"github.com/mertdogan/campusdesk/internal/app/models"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Workflow errors
	ErrInvalidTransition  = errors.New("operation not permitted in current state")
	ErrDependencyConflict = errors.New("entity has dependent records and cannot be deleted")

	// Storage / transport errors
	ErrOperationFailed = errors.New("operation failed")
)

// Entity errors
var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrFacultyNotFound    = errors.New("faculty member not found")
	ErrNoticeNotFound     = errors.New("notice not found")
	ErrLeaveNotFound      = errors.New("leave request not found")
	ErrFeeNotFound        = errors.New("fee record not found")
	ErrRouteNotFound      = errors.New("transport route not found")
	ErrUserNotFound       = errors.New("user not found")
)

// NewValidationError creates a validation error with a caller-facing message.
// Validation errors are resolved before any storage effect occurs.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewInvalidTransitionError creates an error for a workflow operation
// attempted from a state that does not permit it.
func NewInvalidTransitionError(message string) error {
	return &CustomError{Err: ErrInvalidTransition, Message: message}
}

// NewConflictError creates an error for duplicate-resource situations.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates an error for permission denied with a message.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewOperationFailedError wraps a storage or transport failure with a
// human-readable fallback message; the cause stays attached for logging
// and is never surfaced to the presentation layer.
func NewOperationFailedError(message string, cause error) error {
	return &CustomError{Err: ErrOperationFailed, Message: message, Cause: cause}
}

// DependencyConflictError blocks a hard delete and carries the per-category
// breakdown of dependent records for caller display.
type DependencyConflictError struct {
	Entity     string
	Dependents models.DependentCounts
}

// Error implements the error interface.
func (e *DependencyConflictError) Error() string {
	return fmt.Sprintf("%s has %d dependent records and cannot be deleted", e.Entity, e.Dependents.Total())
}

// Unwrap lets errors.Is match ErrDependencyConflict.
func (e *DependencyConflictError) Unwrap() error {
	return ErrDependencyConflict
}

// NewDependencyConflictError creates a DependencyConflictError.
func NewDependencyConflictError(entity string, dependents models.DependentCounts) error {
	return &DependencyConflictError{Entity: entity, Dependents: dependents}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Cause   error
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// Is returns whether target matches err or any of the errors in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
