package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// User-facing messages. Internal error detail never reaches the caller.
const (
	SystemErrorMessage     = "internal server error"
	AuthErrorMessage       = "missing or invalid credentials"
	DependencyErrorMessage = "upstream dependency failed"
	RedisErrorMessage      = "redis operation failed"
	NotFoundMessage        = "record not found"
	PostgresErrorMessage   = "database operation failed"
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Authentication marks a request that carries no valid verified identity.
// Raised before any component runs.
func Authentication(err error) *AppError {
	return New(err, http.StatusUnauthorized, AuthErrorMessage)
}

// Validation marks a malformed request (e.g. empty query text). State is
// untouched when this is returned.
func Validation(message string) *AppError {
	return New(nil, http.StatusBadRequest, message)
}

// Dependency marks a failure in an external collaborator (knowledge lookup,
// model call, or store). The caller sees a generic failure; no partial turn
// is recorded so a retry is safe.
func Dependency(err error) *AppError {
	return New(err, http.StatusBadGateway, DependencyErrorMessage)
}

// Status resolves the HTTP status for an error chain, defaulting to 500.
func Status(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// SafeMessage resolves the user-facing message for an error chain.
func SafeMessage(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return SystemErrorMessage
}
