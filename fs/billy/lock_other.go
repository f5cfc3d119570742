//go:build !(linux || darwin || freebsd || openbsd || netbsd || dragonfly)

package billy

// tryLock is a no-op on platforms without flock.
func tryLock(fd uintptr, exclusive bool) error {
	return nil
}
