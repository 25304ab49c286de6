package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for service operations.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeZoneUnresolvable indicates a location could not be mapped to a
	// usable timezone.
	ErrCodeZoneUnresolvable ErrorCode = "ZONE_UNRESOLVABLE"
	// ErrCodeRateLimitExceeded indicates rate limit has been exceeded.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeLLMUnavailable indicates the LLM provider is not available.
	ErrCodeLLMUnavailable ErrorCode = "LLM_UNAVAILABLE"
	// ErrCodeLLMMalformedReply indicates the LLM reply held no usable JSON.
	ErrCodeLLMMalformedReply ErrorCode = "LLM_MALFORMED_REPLY"
	// ErrCodeInternal indicates an unexpected internal fault.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// ServiceError represents a structured error for service operations.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Convenience constructors for common error types.

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeInvalidArgument, Message: msg}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *ServiceError {
	return &ServiceError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// LLMUnavailable creates an LLM unavailable error.
func LLMUnavailable(msg string, cause error) *ServiceError {
	return &ServiceError{Code: ErrCodeLLMUnavailable, Message: msg, Cause: cause}
}

// LLMMalformedReply creates an error for replies with no usable JSON.
func LLMMalformedReply(msg string, cause error) *ServiceError {
	return &ServiceError{Code: ErrCodeLLMMalformedReply, Message: msg, Cause: cause}
}
