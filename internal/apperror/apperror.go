// Package apperror defines the application error taxonomy and its mapping to
// HTTP status codes, so every failure path produces exactly one well-formed
// JSON response.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// DatabaseError wraps any underlying store failure.
	DatabaseError
	// AuthError represents an authentication failure (missing, invalid or
	// unresolvable credentials).
	AuthError
	// ForbiddenError represents an authorization failure (authenticated, but
	// not permitted to touch the resource).
	ForbiddenError
	// NotFoundError represents a missing resource.
	NotFoundError
	// ValidationError represents a rejected input (bad fields, unknown email,
	// expired reset token, duplicate signup).
	ValidationError
	// BadRequestError represents an unparseable request.
	BadRequestError
	// InternalError represents any other server-side fault.
	InternalError
)

// AppError is the error type carried through services and handlers. It wraps
// an optional underlying error for logs while exposing only Message to clients.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError:
		return http.StatusUnprocessableEntity
	case BadRequestError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse converts an AppError to the client-facing payload. Only Message
// is exposed; the wrapped error stays in the logs.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

func newError(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

// NewDatabaseError creates a DatabaseError.
func NewDatabaseError(message string, err error) *AppError {
	return newError(DatabaseError, message, err)
}

// NewAuthError creates an AuthError.
func NewAuthError(message string, err error) *AppError {
	return newError(AuthError, message, err)
}

// NewForbiddenError creates a ForbiddenError.
func NewForbiddenError(message string, err error) *AppError {
	return newError(ForbiddenError, message, err)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(message string, err error) *AppError {
	return newError(NotFoundError, message, err)
}

// NewValidationError creates a ValidationError.
func NewValidationError(message string, err error) *AppError {
	return newError(ValidationError, message, err)
}

// NewBadRequestError creates a BadRequestError.
func NewBadRequestError(message string, err error) *AppError {
	return newError(BadRequestError, message, err)
}

// NewInternalError creates an InternalError.
func NewInternalError(message string, err error) *AppError {
	return newError(InternalError, message, err)
}

// FromError extracts an *AppError from an error chain.
func FromError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsForbidden reports whether err is an authorization failure.
func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ForbiddenError
}

// IsValidationError reports whether err is a rejected input.
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsNotFound reports whether err is a missing resource.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}
