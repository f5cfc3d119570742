package stream

import (
	"errors"
	"io"
	iofs "io/fs"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/input-output-hk/catalyst-forge-libs/stream/fs"
)

// FileStream is a Stream over a single exclusively-owned file handle.
// Reads and writes go straight to the handle at its current position;
// nothing is buffered.
//
// Thread Safety: Retain, Release, Close and QueryCapability are safe for
// concurrent use. Read, Write, Seek and SetSize are not synchronised and
// share the handle's position, exactly as concurrent use of the file would.
type FileStream struct {
	file   fs.File
	path   string
	mode   Mode
	logger *slog.Logger

	refs      atomic.Int32
	closeOnce sync.Once
	closeErr  error
}

var _ Stream = (*FileStream)(nil)

// newFileStream takes ownership of file with a reference count of one.
func newFileStream(file fs.File, path string, mode Mode, logger *slog.Logger) *FileStream {
	s := &FileStream{
		file:   file,
		path:   path,
		mode:   mode,
		logger: logger.With("path", path),
	}
	s.refs.Store(1)
	return s
}

// Path returns the path the stream was opened on.
func (s *FileStream) Path() string {
	return s.path
}

// Mode returns the mode the stream was opened with.
func (s *FileStream) Mode() Mode {
	return s.mode
}

// QueryCapability implements Object.QueryCapability.
//
//nolint:ireturn // Object is the capability handed back by design.
func (s *FileStream) QueryCapability(id Capability) (Object, error) {
	if id != CapabilityObject && id != CapabilityStream {
		s.logger.Debug("capability not supported", "capability", id)
		return nil, opError("query", s.path, ErrNoInterface)
	}
	if s.Retain() == 0 {
		return nil, opError("query", s.path, ErrClosed)
	}
	return s, nil
}

// Retain implements Object.Retain. A destroyed stream stays destroyed and
// Retain returns 0.
func (s *FileStream) Retain() int32 {
	for {
		cur := s.refs.Load()
		if cur <= 0 {
			s.logger.Warn("retain on destroyed stream")
			return 0
		}
		if s.refs.CompareAndSwap(cur, cur+1) {
			s.logger.Debug("stream retained", "refs", cur+1)
			return cur + 1
		}
	}
}

// Release implements Object.Release. Releasing a destroyed stream returns 0
// and leaves the handle alone.
func (s *FileStream) Release() int32 {
	refs, _ := s.release()
	return refs
}

// Close releases one reference. When that was the last reference it returns
// the error from closing the handle; on an already destroyed stream it
// returns ErrClosed.
func (s *FileStream) Close() error {
	refs, destroyed := s.release()
	switch {
	case destroyed:
		return s.closeErr
	case refs == 0:
		return opError("close", s.path, ErrClosed)
	default:
		return nil
	}
}

// release drops a reference and reports whether this call destroyed the stream.
func (s *FileStream) release() (int32, bool) {
	for {
		cur := s.refs.Load()
		if cur <= 0 {
			s.logger.Warn("release on destroyed stream")
			return 0, false
		}
		if !s.refs.CompareAndSwap(cur, cur-1) {
			continue
		}
		s.logger.Debug("stream released", "refs", cur-1)
		if cur == 1 {
			s.destroy()
			return 0, true
		}
		return cur - 1, false
	}
}

func (s *FileStream) destroy() {
	s.closeOnce.Do(func() {
		if err := s.file.Close(); err != nil {
			s.closeErr = ioError("close", s.path, err)
			s.logger.Warn("closing stream handle failed", "error", err)
		}
		s.logger.Debug("stream destroyed")
	})
}

// live returns ErrClosed once the last reference is gone.
func (s *FileStream) live(op string) error {
	if s.refs.Load() <= 0 {
		return opError(op, s.path, ErrClosed)
	}
	return nil
}

// Read reads up to len(p) bytes at the current position.
// End of file is reported as io.EOF; any other failure is a coded error.
func (s *FileStream) Read(p []byte) (int, error) {
	if p == nil {
		return 0, opError("read", s.path, ErrInvalidPointer)
	}
	if err := s.live("read"); err != nil {
		return 0, err
	}

	n, err := s.file.Read(p)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return n, io.EOF
		}
		s.logger.Debug("read failed", "requested", len(p), "read", n, "error", err)
		return n, ioError("read", s.path, err)
	}
	return n, nil
}

// Write writes p at the current position.
func (s *FileStream) Write(p []byte) (int, error) {
	if p == nil {
		return 0, opError("write", s.path, ErrInvalidPointer)
	}
	if err := s.live("write"); err != nil {
		return 0, err
	}

	n, err := s.file.Write(p)
	if err != nil {
		s.logger.Debug("write failed", "requested", len(p), "written", n, "error", err)
		return n, ioError("write", s.path, err)
	}
	return n, nil
}

// Seek implements io.Seeker with native 64-bit offsets. A target before the
// start of the file fails with ErrInvalidArgument and leaves the position alone.
func (s *FileStream) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart, io.SeekCurrent, io.SeekEnd:
	default:
		return 0, opError("seek", s.path, ErrInvalidFlag)
	}
	if err := s.live("seek"); err != nil {
		return 0, err
	}

	// Only a negative offset can land before byte 0. Some providers accept
	// that, so remember where to go back to.
	var prev int64
	if offset < 0 {
		cur, err := s.file.Seek(0, io.SeekCurrent)
		if err != nil {
			s.logger.Debug("seek failed", "offset", offset, "whence", whence, "error", err)
			return 0, ioError("seek", s.path, err)
		}
		prev = cur
	}

	pos, err := s.file.Seek(offset, whence)
	if err != nil {
		s.logger.Debug("seek failed", "offset", offset, "whence", whence, "error", err)
		return 0, ioError("seek", s.path, err)
	}
	if pos < 0 {
		s.logger.Debug("seek before start of file", "offset", offset, "whence", whence, "position", pos)
		if _, err := s.file.Seek(prev, io.SeekStart); err != nil {
			return 0, ioError("seek", s.path, err)
		}
		return 0, opError("seek", s.path, ErrInvalidArgument)
	}
	return pos, nil
}

// SetSize moves the position to size and makes size the end of the file.
func (s *FileStream) SetSize(size uint64) error {
	if size > math.MaxInt64 {
		return opError("setsize", s.path, ErrInvalidArgument)
	}
	if err := s.live("setsize"); err != nil {
		return err
	}

	if _, err := s.file.Seek(int64(size), io.SeekStart); err != nil {
		s.logger.Debug("setsize seek failed", "size", size, "error", err)
		return ioError("setsize", s.path, err)
	}
	if err := s.file.Truncate(int64(size)); err != nil {
		s.logger.Debug("setsize truncate failed", "size", size, "error", err)
		return ioError("setsize", s.path, err)
	}
	return nil
}

func (s *FileStream) notImplemented(op string) error {
	s.logger.Debug("unsupported stream operation", "op", op)
	return opError(op, s.path, ErrNotImplemented)
}

// CopyTo is not supported.
func (s *FileStream) CopyTo(Stream, uint64) (uint64, uint64, error) {
	return 0, 0, s.notImplemented("copyto")
}

// Commit is not supported.
func (s *FileStream) Commit(CommitFlags) error {
	return s.notImplemented("commit")
}

// Revert is not supported.
func (s *FileStream) Revert() error {
	return s.notImplemented("revert")
}

// LockRegion is not supported.
func (s *FileStream) LockRegion(uint64, uint64, LockType) error {
	return s.notImplemented("lockregion")
}

// UnlockRegion is not supported.
func (s *FileStream) UnlockRegion(uint64, uint64, LockType) error {
	return s.notImplemented("unlockregion")
}

// Stat is not supported.
func (s *FileStream) Stat(StatFlags) (iofs.FileInfo, error) {
	return nil, s.notImplemented("stat")
}

// Clone is not supported.
//
//nolint:ireturn // signature dictated by Stream.
func (s *FileStream) Clone() (Stream, error) {
	return nil, s.notImplemented("clone")
}
