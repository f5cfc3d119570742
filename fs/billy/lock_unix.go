//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

package billy

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	parentfs "github.com/input-output-hk/catalyst-forge-libs/stream/fs"
)

// tryLock takes a non-blocking flock on fd. flock locks belong to the open file
// description, so two handles in the same process conflict just like two processes.
func tryLock(fd uintptr, exclusive bool) error {
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}

	err := unix.Flock(int(fd), how|unix.LOCK_NB)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EWOULDBLOCK):
		return fmt.Errorf("%w: %w", parentfs.ErrShareViolation, err)
	default:
		return fmt.Errorf("flock: %w", err)
	}
}
