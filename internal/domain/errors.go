// Package domain defines the core business entities and errors.
package domain

import (
	"fmt"
	"net/http"
)

// ResourceError is a typed failure raised by the user lifecycle
// service. It carries a machine-readable code suitable for
// programmatic branching by API clients, a human-readable message,
// and the HTTP status the API layer should answer with. The service
// itself never touches transport concepts beyond recording the
// intended status here.
type ResourceError struct {
	Code    string // short machine-readable tag, e.g. "UserNotFound"
	Message string // human-readable detail
	Status  int    // associated HTTP status
	Err     error  // underlying cause, if any
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause to support errors.Is/errors.As.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a ResourceError with the given code,
// message and status, wrapping the underlying cause.
func NewResourceError(code, message string, status int, err error) *ResourceError {
	return &ResourceError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ErrUserNotFound builds the not-found error for a missing user record.
func ErrUserNotFound(err error) *ResourceError {
	return NewResourceError(
		"UserNotFound",
		"The user ID is not found in the database.",
		http.StatusNotFound,
		err,
	)
}

// ErrUserAlreadyExists builds the conflict error for a username
// uniqueness violation.
func ErrUserAlreadyExists(username string, err error) *ResourceError {
	return NewResourceError(
		"UserAlreadyExists",
		fmt.Sprintf("The user %s already exists.", username),
		http.StatusConflict,
		err,
	)
}

// ErrCreateUser builds the internal error for an unclassified create failure.
func ErrCreateUser(username string, err error) *ResourceError {
	return NewResourceError(
		"CreateUserError",
		fmt.Sprintf("Error while creating the user %s.", username),
		http.StatusInternalServerError,
		err,
	)
}

// ErrUpdateUser builds the internal error for an unclassified update failure.
func ErrUpdateUser(id fmt.Stringer, err error) *ResourceError {
	return NewResourceError(
		"UpdateUserError",
		fmt.Sprintf("Error while updating the user with the ID %s.", id),
		http.StatusInternalServerError,
		err,
	)
}

// ErrDeleteUser builds the internal error for an unclassified delete failure.
func ErrDeleteUser(id fmt.Stringer, err error) *ResourceError {
	return NewResourceError(
		"DeleteUserError",
		fmt.Sprintf("Error while deleting the user with the ID %s.", id),
		http.StatusInternalServerError,
		err,
	)
}
