package stream

import (
	"errors"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/input-output-hk/catalyst-forge-libs/stream/fs"
)

// fakeFile is an in-memory fs.File with injectable failures.
type fakeFile struct {
	name string
	data []byte
	pos  int64

	readErr  error
	writeErr error
	seekErr  error
	truncErr error
	closeErr error
	lockErr  error

	// lenientSeek lets Seek land before byte 0, as the in-memory provider does.
	lenientSeek bool

	closes    atomic.Int32
	truncates []int64
	locks     []bool
}

var (
	_ fs.File        = (*fakeFile)(nil)
	_ fs.ShareLocker = (*fakeFile)(nil)
)

func (f *fakeFile) Close() error {
	f.closes.Add(1)
	return f.closeErr
}

func (f *fakeFile) Name() string { return f.name }

func (f *fakeFile) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

func (f *fakeFile) Seek(offset int64, whence int) (int64, error) {
	if f.seekErr != nil {
		return 0, f.seekErr
	}
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += f.pos
	case io.SeekEnd:
		offset += int64(len(f.data))
	}
	if offset < 0 && !f.lenientSeek {
		return 0, os.ErrInvalid
	}
	f.pos = offset
	return f.pos, nil
}

func (f *fakeFile) Stat() (iofs.FileInfo, error) {
	return nil, errors.New("fakeFile: stat unsupported")
}

func (f *fakeFile) Truncate(size int64) error {
	f.truncates = append(f.truncates, size)
	if f.truncErr != nil {
		return f.truncErr
	}
	if size <= int64(len(f.data)) {
		f.data = f.data[:size]
		return nil
	}
	f.data = append(f.data, make([]byte, size-int64(len(f.data)))...)
	return nil
}

func (f *fakeFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	end := f.pos + int64(len(p))
	if end > int64(len(f.data)) {
		f.data = append(f.data, make([]byte, end-int64(len(f.data)))...)
	}
	copy(f.data[f.pos:], p)
	f.pos = end
	return len(p), nil
}

func (f *fakeFile) TryLock(exclusive bool) error {
	f.locks = append(f.locks, exclusive)
	return f.lockErr
}

// fakeFS hands out a single fakeFile and records how it was asked to open it.
type fakeFS struct {
	file    *fakeFile
	openErr error

	opens int
	flag  int
	flags []int
	perm  os.FileMode
}

var _ fs.Filesystem = (*fakeFS)(nil)

func (f *fakeFS) Exists(string) (bool, error) {
	return f.file != nil, nil
}

func (f *fakeFS) MkdirAll(string, os.FileMode) error {
	return nil
}

func (f *fakeFS) ReadFile(string) ([]byte, error) {
	if f.file == nil {
		return nil, os.ErrNotExist
	}
	return f.file.data, nil
}

func (f *fakeFS) Remove(string) error {
	return nil
}

func (f *fakeFS) Stat(string) (os.FileInfo, error) {
	return nil, os.ErrNotExist
}

func (f *fakeFS) WriteFile(string, []byte, os.FileMode) error {
	return nil
}

//nolint:ireturn // matches fs.Filesystem.
func (f *fakeFS) OpenFile(name string, flag int, perm os.FileMode) (fs.File, error) {
	f.opens++
	f.flag = flag
	f.flags = append(f.flags, flag)
	f.perm = perm
	if f.openErr != nil {
		return nil, f.openErr
	}
	if f.file == nil {
		f.file = &fakeFile{}
	}
	if flag&os.O_TRUNC != 0 {
		f.file.data = nil
	}
	f.file.name = name
	return f.file, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// newFakeStream wraps file in a FileStream without going through a provider.
func newFakeStream(file *fakeFile) *FileStream {
	return newFileStream(file, "fake.bin", ModeReadWrite|ModeOpenExisting, discardLogger())
}
