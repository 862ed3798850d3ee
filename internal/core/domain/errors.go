// Package domain defines shared domain types for PacketSeal tooling.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a tooling error with a structured error code.
// The cipher core carries its own error taxonomy in pkg/crypto/rtpgcm;
// these codes cover the harness and CLI surface around it.
type DomainError struct {
	Code    string // Error code (e.g., "PS-ARG-1001")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Argument errors (ARG).
var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("PS-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("PS-ARG-1002", "missing required argument")
)

// Configuration errors (CFG).
var (
	// ErrConfigLoad indicates the configuration could not be loaded.
	ErrConfigLoad = NewDomainError("PS-CFG-5001", "configuration load failed")

	// ErrConfigInvalid indicates the configuration failed validation.
	ErrConfigInvalid = NewDomainError("PS-CFG-4001", "configuration validation failed")
)

// Self-test errors (TEST).
var (
	// ErrSelfTestFailed indicates one or more known-answer cases failed.
	ErrSelfTestFailed = NewDomainError("PS-TEST-5001", "cipher self-test failed")
)
