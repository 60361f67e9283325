package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ExternalToolFailure indicates git (or another external tool) could not
	// be launched or exited non-zero
	ExternalToolFailure ErrorCode = "EXTERNAL_TOOL_FAILURE"
	// MalformedCommitHeader indicates a log header line violated the
	// expected field structure
	MalformedCommitHeader ErrorCode = "MALFORMED_COMMIT_HEADER"
	// MalformedSnapshotListing indicates an ls-tree output line could not
	// be parsed
	MalformedSnapshotListing ErrorCode = "MALFORMED_SNAPSHOT_LISTING"
	// FileNotInSnapshot indicates a path is absent from the committed tree
	// at HEAD
	FileNotInSnapshot ErrorCode = "FILE_NOT_IN_SNAPSHOT"
	// ConfigInvalid indicates a configuration value failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FreckError represents a freck error with a stable code, a message, and
// optional structured details
type FreckError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a FreckError without an underlying cause
func New(code ErrorCode, message string) *FreckError {
	return &FreckError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a FreckError wrapping an underlying cause
func Wrap(code ErrorCode, message string, cause error) *FreckError {
	return &FreckError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *FreckError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *FreckError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *FreckError) WithDetails(details interface{}) *FreckError {
	e.Details = details
	return e
}

// HasCode reports whether err is (or wraps) a FreckError with the given code
func HasCode(err error, code ErrorCode) bool {
	var fe *FreckError
	if stderrors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}

// CodeOf returns the error code of err, or InternalError when err carries
// no FreckError in its chain
func CodeOf(err error) ErrorCode {
	var fe *FreckError
	if stderrors.As(err, &fe) {
		return fe.Code
	}
	return InternalError
}
