package utils

import (
	"errors"
	"net/http"
)

// AppError carries the HTTP status and client-facing message for a failure.
// Err holds the underlying cause for logging and is never sent to clients.
type AppError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message}
}

// WrapInternalError keeps cause for the logs while clients only see message.
func WrapInternalError(message string, cause error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message, Err: cause}
}

// AsAppError reports whether err is, or wraps, an *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
