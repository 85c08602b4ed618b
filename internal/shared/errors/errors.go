// Package errors defines the typed errors use cases return and the HTTP
// layer renders. Anything that is not an *AppError renders as a 500.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal_error"
	ErrorTypeBadRequest   ErrorType = "bad_request"

	// A lifecycle step the caller may not take (approve, mark fixed).
	ErrorTypeForbiddenTransition ErrorType = "forbidden_transition"
	// An edit or delete by someone other than the submitter.
	ErrorTypeForbiddenEdit    ErrorType = "forbidden_edit"
	ErrorTypeStoreUnavailable ErrorType = "store_unavailable"
)

// AppError is the error shape rendered to clients. Code is the HTTP status.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(errType ErrorType, code int, message string, details []string) *AppError {
	e := &AppError{Type: errType, Message: message, Code: code}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

func NewForbiddenTransitionError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbiddenTransition, http.StatusForbidden, message, details)
}

func NewForbiddenEditError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbiddenEdit, http.StatusForbidden, message, details)
}

// NewStoreUnavailableError reports that the database could not be reached.
// Reads fall back to the cached feed; writes surface it as a 503.
func NewStoreUnavailableError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeStoreUnavailable, http.StatusServiceUnavailable, message, details)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError returns the first *AppError in err's chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func hasType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

func IsConflictError(err error) bool            { return hasType(err, ErrorTypeConflict) }
func IsNotFoundError(err error) bool            { return hasType(err, ErrorTypeNotFound) }
func IsValidationError(err error) bool          { return hasType(err, ErrorTypeValidation) }
func IsForbiddenTransitionError(err error) bool { return hasType(err, ErrorTypeForbiddenTransition) }
func IsForbiddenEditError(err error) bool       { return hasType(err, ErrorTypeForbiddenEdit) }
func IsStoreUnavailableError(err error) bool    { return hasType(err, ErrorTypeStoreUnavailable) }

// IsDuplicateError recognises unique-key violations from MySQL and SQLite.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicated key")
}
