// Package errors provides application-level error types and utilities.
// It separates failures the backend reported from failures to reach it at all,
// and carries field-tagged validation failures raised before any request is sent.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation_error"
	ErrorTypeUnauthorized  ErrorType = "unauthorized"
	ErrorTypeRemote        ErrorType = "remote_error"
	ErrorTypeTransport     ErrorType = "transport_error"
	ErrorTypeNotConfigured ErrorType = "not_configured"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error returns the message alone so it can be shown to users as-is.
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Details)
	}
	return e.Message
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewRemoteError wraps a rejection reported by the backend. code is the HTTP
// status the backend answered with.
func NewRemoteError(code int, message string, details ...string) *AppError {
	return newAppError(ErrorTypeRemote, code, message, details)
}

// NewTransportError reports that no response was received at all.
func NewTransportError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeTransport, 0, message, details)
}

// NewNotConfiguredError reports that a required integration has no credentials.
func NewNotConfiguredError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotConfigured, http.StatusPreconditionRequired, message, details)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsTransportError checks if the error is a transport error
func IsTransportError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeTransport
}

// reportedError marks an error the user has already been shown.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported wraps err to record that it was already surfaced to the user, so
// outer layers do not show it a second time.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported checks if the error was already surfaced to the user
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// StatusCode returns the HTTP status carried by an AppError, or 0.
func StatusCode(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return 0
}
