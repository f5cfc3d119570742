// Package errors provides the coded error type used across the stream library.
// It extends Go's standard error handling with string error codes that survive
// wrapping, so callers can classify a failure without matching on messages.
package errors

// ErrorCode represents a specific error condition reported by a stream or its provider.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Resource errors.

	// CodeNotFound indicates the named file does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates the file already exists and cannot be created again.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeConflict indicates another handle holds the file in a conflicting share mode.
	CodeConflict ErrorCode = "CONFLICT"

	// CodeClosed indicates the stream or handle has already been destroyed.
	CodeClosed ErrorCode = "CLOSED"

	// Permission errors.

	// CodeForbidden indicates the caller lacks permission for the operation.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// Validation errors.

	// CodeInvalidInput indicates an argument is invalid, such as a transacted mode request.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidFlag indicates an unrecognised mode or origin flag.
	CodeInvalidFlag ErrorCode = "INVALID_FLAG"

	// CodeInvalidPointer indicates a required buffer was absent.
	CodeInvalidPointer ErrorCode = "INVALID_POINTER"

	// Infrastructure errors.

	// CodeIO indicates a read, write, seek or truncate failed at the provider.
	CodeIO ErrorCode = "IO_ERROR"

	// System errors.

	// CodeNotImplemented indicates the requested functionality is not implemented.
	CodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// CodeNoInterface indicates an object does not support the queried capability.
	CodeNoInterface ErrorCode = "NO_INTERFACE"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
