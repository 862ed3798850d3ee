package rtpgcm

import (
	"errors"
	"fmt"
)

// Error is a cipher error with a structured error code. Two errors compare
// equal under errors.Is when their codes match, so callers can test for a
// kind (errors.Is(err, rtpgcm.ErrAuthFailure)) regardless of the details
// attached at the failure site.
type Error struct {
	Code    string // Error code (e.g., "PS-CIPH-4010")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// newError creates a new Error with the given code and message.
func newError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// ErrorCode extracts the error code from an error if it's a cipher Error.
func ErrorCode(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// The cipher error taxonomy. Every operation returns one of these on its
// first failure; there are no retries in this layer.
var (
	// ErrBadParameter indicates an invalid key length, tag length,
	// direction, IV size, or caller buffer.
	ErrBadParameter = newError("PS-CIPH-1001", "bad parameter")

	// ErrAllocFailure indicates context construction could not complete.
	ErrAllocFailure = newError("PS-CIPH-1002", "cipher allocation failed")

	// ErrInitFailure indicates key or nonce binding failed in a sub-engine.
	ErrInitFailure = newError("PS-CIPH-1003", "cipher initialization failed")

	// ErrAlgorithmFailure indicates an internal engine reset or AAD commit
	// failed, typically because the context is not in the required state.
	ErrAlgorithmFailure = newError("PS-CIPH-1004", "cipher algorithm failure")

	// ErrCipherFailure indicates the block transform itself failed.
	ErrCipherFailure = newError("PS-CIPH-1005", "cipher transform failed")

	// ErrAuthFailure indicates the authentication tag did not verify on
	// decrypt. The plaintext is discarded; callers count and drop the
	// packet rather than retrying.
	ErrAuthFailure = newError("PS-CIPH-4010", "authentication tag mismatch")
)
