// Package errors provides domain-specific error types and sentinel errors
// for consistent error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimitExceeded indicates a send cap has been reached.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrContextCanceled indicates context was canceled.
	ErrContextCanceled = errors.New("context canceled")

	// ErrOutsideBusinessHours indicates the attendance window is closed.
	ErrOutsideBusinessHours = errors.New("outside business hours")

	// ErrIdentityIncomplete indicates the sender's identity data could not be parsed.
	ErrIdentityIncomplete = errors.New("identity data incomplete")

	// ErrUnknownDepartment indicates a department code outside the catalog.
	ErrUnknownDepartment = errors.New("unknown department")

	// ErrProviderUnavailable indicates no classification provider responded.
	ErrProviderUnavailable = errors.New("classification provider unavailable")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// GatewayError represents WhatsApp gateway call failures with context.
type GatewayError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("gateway error (endpoint=%s, status=%d): %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gateway error (endpoint=%s): %v", e.Endpoint, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError creates a new gateway error.
func NewGatewayError(endpoint string, statusCode int, err error) *GatewayError {
	return &GatewayError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Err:        err,
	}
}
