package fs

import (
	"errors"
	"io/fs"
)

// ErrShareViolation is returned by ShareLocker.TryLock when another handle holds
// the file in a conflicting share mode.
var ErrShareViolation = errors.New("fs: sharing violation")

// File represents an open file handle supporting basic I/O operations.
// Implementations should behave consistently with the standard library.
type File interface {
	Close() error
	Name() string
	Read(p []byte) (n int, err error)
	Seek(offset int64, whence int) (int64, error)
	Stat() (fs.FileInfo, error)
	Truncate(size int64) error
	Write(p []byte) (n int, err error)
}

// ShareLocker is implemented by files that can take a non-blocking advisory
// share lock. A shared lock admits other shared holders; an exclusive lock
// admits nobody. The lock is released when the file is closed.
type ShareLocker interface {
	TryLock(exclusive bool) error
}
