package stream

import (
	"errors"
	"fmt"

	ferrors "github.com/input-output-hk/catalyst-forge-libs/stream/errors"
	"github.com/input-output-hk/catalyst-forge-libs/stream/fs"
)

// Sentinel errors for stream failures.
// These can be used with errors.Is(); errors.CodeOf() yields the matching code.
var (
	// ErrInvalidArgument indicates an argument that can never be honoured, such as ModeTransacted.
	ErrInvalidArgument = errors.New("stream: invalid argument")

	// ErrInvalidFlag indicates an unrecognised access, creation or seek origin value.
	ErrInvalidFlag = errors.New("stream: invalid flag")

	// ErrInvalidPointer indicates a nil buffer was passed to Read or Write.
	ErrInvalidPointer = errors.New("stream: invalid pointer")

	// ErrNotImplemented indicates the stream does not support the operation.
	ErrNotImplemented = errors.New("stream: not implemented")

	// ErrNoInterface indicates the object does not expose the queried capability.
	ErrNoInterface = errors.New("stream: no such interface")

	// ErrClosed indicates the stream was already destroyed.
	ErrClosed = errors.New("stream: closed")
)

var sentinelCodes = map[error]ferrors.ErrorCode{
	ErrInvalidArgument: ferrors.CodeInvalidInput,
	ErrInvalidFlag:     ferrors.CodeInvalidFlag,
	ErrInvalidPointer:  ferrors.CodeInvalidPointer,
	ErrNotImplemented:  ferrors.CodeNotImplemented,
	ErrNoInterface:     ferrors.CodeNoInterface,
	ErrClosed:          ferrors.CodeClosed,
}

// opError annotates a sentinel with the failing operation and path.
func opError(op, path string, sentinel error) error {
	return ferrors.Wrap(sentinel, sentinelCodes[sentinel], opMessage(op, path))
}

// ioError annotates a provider failure, classifying it by its OS cause.
func ioError(op, path string, err error) error {
	code := ferrors.FromOS(err)
	if errors.Is(err, fs.ErrShareViolation) {
		code = ferrors.CodeConflict
	}
	return ferrors.Wrap(err, code, opMessage(op, path))
}

func opMessage(op, path string) string {
	return fmt.Sprintf("stream: %s %q", op, path)
}
