package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigMissing indicates a required setting (usually the API key) is absent
	ConfigMissing ErrorCode = "CONFIG_MISSING"
	// FileNotFound indicates a file key does not resolve against the remote API
	FileNotFound ErrorCode = "FILE_NOT_FOUND"
	// NodeNotFound indicates a node id does not resolve inside its file
	NodeNotFound ErrorCode = "NODE_NOT_FOUND"
	// MalformedAddress indicates an address string matched none of the accepted shapes
	MalformedAddress ErrorCode = "MALFORMED_ADDRESS"
	// RemoteUnavailable indicates the remote API call failed (network, auth, rate limit)
	RemoteUnavailable ErrorCode = "REMOTE_UNAVAILABLE"
	// InvalidParameter indicates a tool or resource argument is missing or out of range
	InvalidParameter ErrorCode = "INVALID_PARAMETER"
	// NoActiveFile indicates an operation needed a default file and none is known
	NoActiveFile ErrorCode = "NO_ACTIVE_FILE"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Error represents a figmcp error with code, message, and hints
type Error struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Hints   []string    `json:"hints,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new Error
func New(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// WithHints attaches human-readable hints, e.g. the accepted address shapes
func (e *Error) WithHints(hints ...string) *Error {
	e.Hints = append(e.Hints, hints...)
	return e
}

// NewFileNotFoundError reports a file key that the remote API rejected.
func NewFileNotFoundError(fileKey string, cause error) *Error {
	return New(FileNotFound, fmt.Sprintf("file %q not found", fileKey), cause).
		WithDetails(map[string]string{"fileKey": fileKey})
}

// NewNodeNotFoundError reports a node id missing from a file.
func NewNodeNotFoundError(fileKey, nodeID string, cause error) *Error {
	return New(NodeNotFound, fmt.Sprintf("node %q not found in file %q", nodeID, fileKey), cause).
		WithDetails(map[string]string{"fileKey": fileKey, "nodeId": nodeID})
}

// NewRemoteError wraps a failed remote API call. The cause message is kept verbatim.
func NewRemoteError(operation string, cause error) *Error {
	return New(RemoteUnavailable, fmt.Sprintf("figma api %s failed", operation), cause)
}

// NewInvalidParameterError reports a bad argument.
func NewInvalidParameterError(param, reason string) *Error {
	msg := fmt.Sprintf("invalid parameter %q", param)
	if reason != "" {
		msg += ": " + reason
	}
	return New(InvalidParameter, msg, nil)
}

// CodeOf returns the code of the first *Error in err's chain, or InternalError.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}
