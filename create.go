package stream

import (
	"os"

	"github.com/input-output-hk/catalyst-forge-libs/stream/fs"
)

// CreateOnFile opens path and returns a stream over it with one reference.
//
// The mode must combine ModeRead, ModeWrite or ModeReadWrite with ModeCreate
// or ModeOpenExisting. ModeWrite opens the file for reading as well.
// ModeTransacted is rejected with ErrInvalidArgument and unknown access or
// creation values with ErrInvalidFlag, both before the filesystem is touched.
//
// The handle is opened "share read": other read-only streams may open the
// file at the same time, but no other writer. On providers without share
// locks (such as the in-memory filesystem) this is not enforced.
func CreateOnFile(path string, mode Mode, opts ...Option) (*FileStream, error) {
	o := defaultOptions()
	applyOptions(o, opts)

	plan, err := mode.plan()
	if err != nil {
		o.logger.Debug("rejecting stream mode", "path", path, "mode", mode, "error", err)
		return nil, opError("create", path, err)
	}

	f, err := o.filesystem.OpenFile(path, plan.flag, o.perm)
	if err != nil {
		o.logger.Debug("opening stream handle failed", "path", path, "mode", mode, "error", err)
		return nil, ioError("create", path, err)
	}

	if err := prepare(o.filesystem, path, f, plan); err != nil {
		if cerr := f.Close(); cerr != nil {
			o.logger.Warn("closing rejected stream handle failed", "path", path, "error", cerr)
		}
		o.logger.Debug("preparing stream handle failed", "path", path, "mode", mode, "error", err)
		return nil, ioError("create", path, err)
	}

	s := newFileStream(f, path, mode, o.logger)
	s.logger.Debug("stream created", "mode", mode)
	return s, nil
}

// prepare takes the share lock and applies deferred truncation.
// A read-only handle cannot truncate, so it goes through a second
// write-only open of the same path.
func prepare(fsys fs.Filesystem, path string, f fs.File, plan openPlan) error {
	if locker, ok := f.(fs.ShareLocker); ok {
		if err := locker.TryLock(plan.writable); err != nil {
			return err
		}
	}
	switch {
	case !plan.truncate:
		return nil
	case plan.writable:
		return f.Truncate(0)
	}

	t, err := fsys.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	return t.Close()
}
