package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
)

// AuthError is a 401 carrying whether the failure is routine (a wrong
// password, an expired token) or worth a log line.
type AuthError struct {
	*AppError
	Quiet bool
}

func (e *AuthError) Error() string {
	return e.AppError.Error()
}

func (e *AuthError) Unwrap() error {
	return e.AppError
}

func newAuthError(errType ErrorType, message, details string, quiet bool) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    errType,
			Message: message,
			Code:    http.StatusUnauthorized,
			Details: details,
		},
		Quiet: quiet,
	}
}

// NewInvalidCredentialsError does not reveal whether the email or the
// password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return newAuthError(ErrorTypeInvalidCredentials, "Invalid email or password", "", true)
}

func NewTokenExpiredError(tokenType string) *AuthError {
	return newAuthError(ErrorTypeTokenExpired, fmt.Sprintf("%s has expired", tokenType), "Please login again", true)
}

func NewTokenInvalidError(tokenType string) *AuthError {
	return newAuthError(ErrorTypeTokenInvalid, fmt.Sprintf("Invalid %s", tokenType), "Token is malformed or was not issued by this server", false)
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// ShouldLogAuthError is true for anything that is not a routine auth
// failure, including errors that are not AuthErrors at all.
func ShouldLogAuthError(err error) bool {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return !authErr.Quiet
	}
	return true
}
