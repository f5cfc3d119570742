package errors

import (
	stderrors "errors"
	"fmt"
	iofs "io/fs"
	"syscall"
)

// Error is an error annotated with an ErrorCode.
// The wrapped error stays reachable through errors.Is and errors.As.
type Error struct {
	// Code classifies the failure.
	Code ErrorCode

	// Message describes the operation that failed (e.g. `stream: seek "a.lnk"`).
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given code and message and no cause.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap annotates err with a code and message. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the outermost *Error in err's chain.
// It returns CodeUnknown for non-nil errors carrying no code and "" for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// FromOS classifies an error returned by a file provider.
// Anything it does not recognise is reported as CodeIO.
func FromOS(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, iofs.ErrNotExist):
		return CodeNotFound
	case stderrors.Is(err, iofs.ErrExist):
		return CodeAlreadyExists
	case stderrors.Is(err, iofs.ErrPermission):
		return CodeForbidden
	case stderrors.Is(err, iofs.ErrClosed):
		return CodeClosed
	case stderrors.Is(err, iofs.ErrInvalid), stderrors.Is(err, syscall.EINVAL):
		return CodeInvalidInput
	default:
		return CodeIO
	}
}
