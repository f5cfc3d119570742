package stream

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	ferrors "github.com/input-output-hk/catalyst-forge-libs/stream/errors"
)

func TestFileStream_WriteSeekRead(t *testing.T) {
	s := newFakeStream(&fakeFile{})
	defer func() { _ = s.Close() }()

	n, err := s.Write([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	pos, err := s.Seek(0, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)

	buf := make([]byte, 4)
	n, err = s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)
}

func TestFileStream_Read(t *testing.T) {
	t.Run("nil buffer is an invalid pointer", func(t *testing.T) {
		file := &fakeFile{data: []byte("abc")}
		s := newFakeStream(file)

		n, err := s.Read(nil)
		assert.Zero(t, n)
		assert.ErrorIs(t, err, ErrInvalidPointer)
		assert.Equal(t, ferrors.CodeInvalidPointer, ferrors.CodeOf(err))
		assert.Zero(t, file.pos, "handle must not be touched")
	})

	t.Run("short read advances the position", func(t *testing.T) {
		s := newFakeStream(&fakeFile{data: []byte("ab")})

		buf := make([]byte, 8)
		n, err := s.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		pos, err := s.Seek(0, io.SeekCurrent)
		require.NoError(t, err)
		assert.Equal(t, int64(2), pos)
	})

	t.Run("end of file is a bare io.EOF", func(t *testing.T) {
		s := newFakeStream(&fakeFile{})

		n, err := s.Read(make([]byte, 1))
		assert.Zero(t, n)
		assert.Equal(t, io.EOF, err)
	})

	t.Run("provider failure is a hard error", func(t *testing.T) {
		cause := errors.New("media error")
		s := newFakeStream(&fakeFile{readErr: cause})

		_, err := s.Read(make([]byte, 1))
		require.Error(t, err)
		assert.NotErrorIs(t, err, io.EOF)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, ferrors.CodeIO, ferrors.CodeOf(err))
		assert.Contains(t, err.Error(), `stream: read "fake.bin"`)
	})
}

func TestFileStream_Write(t *testing.T) {
	t.Run("nil buffer is an invalid pointer", func(t *testing.T) {
		file := &fakeFile{}
		s := newFakeStream(file)

		n, err := s.Write(nil)
		assert.Zero(t, n)
		assert.ErrorIs(t, err, ErrInvalidPointer)
		assert.Empty(t, file.data)
	})

	t.Run("empty buffer is accepted", func(t *testing.T) {
		s := newFakeStream(&fakeFile{})

		n, err := s.Write([]byte{})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("provider failure is a hard error", func(t *testing.T) {
		s := newFakeStream(&fakeFile{writeErr: os.ErrPermission})

		_, err := s.Write([]byte("x"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.Equal(t, ferrors.CodeForbidden, ferrors.CodeOf(err))
	})
}

func TestFileStream_Seek(t *testing.T) {
	t.Run("origins", func(t *testing.T) {
		s := newFakeStream(&fakeFile{data: []byte("0123456789")})

		pos, err := s.Seek(4, io.SeekStart)
		require.NoError(t, err)
		assert.Equal(t, int64(4), pos)

		pos, err = s.Seek(-1, io.SeekCurrent)
		require.NoError(t, err)
		assert.Equal(t, int64(3), pos)

		pos, err = s.Seek(-2, io.SeekEnd)
		require.NoError(t, err)
		assert.Equal(t, int64(8), pos)
	})

	t.Run("offsets beyond 32 bits are not truncated", func(t *testing.T) {
		s := newFakeStream(&fakeFile{})

		pos, err := s.Seek(1<<33+5, io.SeekStart)
		require.NoError(t, err)
		assert.Equal(t, int64(1<<33+5), pos)
	})

	t.Run("unknown origin is rejected before the handle", func(t *testing.T) {
		file := &fakeFile{seekErr: errors.New("must not be called")}
		s := newFakeStream(file)

		_, err := s.Seek(0, 3)
		assert.ErrorIs(t, err, ErrInvalidFlag)
		assert.Equal(t, ferrors.CodeInvalidFlag, ferrors.CodeOf(err))
	})

	t.Run("provider failure", func(t *testing.T) {
		s := newFakeStream(&fakeFile{})

		pos, err := s.Seek(-1, io.SeekStart)
		require.Error(t, err)
		assert.Zero(t, pos)
		assert.ErrorIs(t, err, os.ErrInvalid)
	})

	t.Run("landing before start is rejected and keeps the position", func(t *testing.T) {
		file := &fakeFile{data: []byte("abcd"), lenientSeek: true}
		s := newFakeStream(file)

		_, err := s.Seek(2, io.SeekStart)
		require.NoError(t, err)

		pos, err := s.Seek(-10, io.SeekEnd)
		assert.Zero(t, pos)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, ferrors.CodeInvalidInput, ferrors.CodeOf(err))
		assert.Equal(t, int64(2), file.pos)

		_, err = s.Seek(-3, io.SeekCurrent)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, int64(2), file.pos)
	})
}

func TestFileStream_SetSize(t *testing.T) {
	t.Run("shrink leaves the position at the new end", func(t *testing.T) {
		file := &fakeFile{data: []byte("0123456789")}
		s := newFakeStream(file)

		require.NoError(t, s.SetSize(4))
		assert.Equal(t, []byte("0123"), file.data)

		pos, err := s.Seek(0, io.SeekCurrent)
		require.NoError(t, err)
		assert.Equal(t, int64(4), pos)

		end, err := s.Seek(0, io.SeekEnd)
		require.NoError(t, err)
		assert.Equal(t, int64(4), end)
	})

	t.Run("grow zero-fills", func(t *testing.T) {
		file := &fakeFile{data: []byte("ab")}
		s := newFakeStream(file)

		require.NoError(t, s.SetSize(5))
		assert.Equal(t, []byte{'a', 'b', 0, 0, 0}, file.data)
	})

	t.Run("size beyond int64 is invalid input", func(t *testing.T) {
		file := &fakeFile{}
		s := newFakeStream(file)

		err := s.SetSize(math.MaxInt64 + 1)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, ferrors.CodeInvalidInput, ferrors.CodeOf(err))
		assert.Empty(t, file.truncates)
	})

	t.Run("positioning failure skips truncation", func(t *testing.T) {
		file := &fakeFile{seekErr: errors.New("seek broke")}
		s := newFakeStream(file)

		require.Error(t, s.SetSize(3))
		assert.Empty(t, file.truncates)
	})

	t.Run("truncation failure", func(t *testing.T) {
		cause := errors.New("quota exceeded")
		s := newFakeStream(&fakeFile{truncErr: cause})

		err := s.SetSize(3)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, ferrors.CodeIO, ferrors.CodeOf(err))
	})
}

func TestFileStream_Unsupported(t *testing.T) {
	s := newFakeStream(&fakeFile{})
	other := newFakeStream(&fakeFile{})

	calls := map[string]func() error{
		"CopyTo": func() error {
			read, written, err := s.CopyTo(other, 10)
			assert.Zero(t, read)
			assert.Zero(t, written)
			return err
		},
		"CopyTo nil destination": func() error {
			_, _, err := s.CopyTo(nil, 0)
			return err
		},
		"Commit":               func() error { return s.Commit(0) },
		"Revert":               s.Revert,
		"LockRegion":           func() error { return s.LockRegion(0, 0, LockWrite) },
		"LockRegion exclusive": func() error { return s.LockRegion(1, math.MaxUint64, LockExclusive) },
		"UnlockRegion":         func() error { return s.UnlockRegion(0, 0, LockOnlyOnce) },
		"Stat": func() error {
			info, err := s.Stat(0)
			assert.Nil(t, info)
			return err
		},
		"Clone": func() error {
			clone, err := s.Clone()
			assert.Nil(t, clone)
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			assert.ErrorIs(t, err, ErrNotImplemented)
			assert.Equal(t, ferrors.CodeNotImplemented, ferrors.CodeOf(err))
		})
	}

	t.Run("after destruction", func(t *testing.T) {
		dead := newFakeStream(&fakeFile{})
		require.Equal(t, int32(0), dead.Release())

		assert.ErrorIs(t, dead.Revert(), ErrNotImplemented)
		_, err := dead.Clone()
		assert.ErrorIs(t, err, ErrNotImplemented)
	})
}

func TestFileStream_RetainRelease(t *testing.T) {
	file := &fakeFile{}
	s := newFakeStream(file)

	assert.Equal(t, int32(2), s.Retain())
	assert.Equal(t, int32(3), s.Retain())
	assert.Equal(t, int32(2), s.Release())
	assert.Equal(t, int32(1), s.Release())
	assert.Zero(t, file.closes.Load())

	assert.Equal(t, int32(0), s.Release())
	assert.Equal(t, int32(1), file.closes.Load())

	t.Run("extra release never closes twice", func(t *testing.T) {
		assert.Equal(t, int32(0), s.Release())
		assert.Equal(t, int32(0), s.Release())
		assert.Equal(t, int32(1), file.closes.Load())
	})

	t.Run("destroyed stream is not resurrected", func(t *testing.T) {
		assert.Equal(t, int32(0), s.Retain())
		assert.Equal(t, int32(0), s.Release())
		assert.Equal(t, int32(1), file.closes.Load())
	})

	t.Run("operations after destruction fail without touching the handle", func(t *testing.T) {
		_, err := s.Read(make([]byte, 1))
		assert.ErrorIs(t, err, ErrClosed)
		_, err = s.Write([]byte("x"))
		assert.ErrorIs(t, err, ErrClosed)
		_, err = s.Seek(0, io.SeekStart)
		assert.ErrorIs(t, err, ErrClosed)
		err = s.SetSize(0)
		assert.ErrorIs(t, err, ErrClosed)
		assert.Equal(t, ferrors.CodeClosed, ferrors.CodeOf(err))
		assert.Empty(t, file.truncates)
	})
}

func TestFileStream_Close(t *testing.T) {
	t.Run("last reference returns the close error", func(t *testing.T) {
		cause := errors.New("flush failed")
		file := &fakeFile{closeErr: cause}
		s := newFakeStream(file)
		s.Retain()

		require.NoError(t, s.Close())
		assert.Zero(t, file.closes.Load())

		err := s.Close()
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, int32(1), file.closes.Load())
	})

	t.Run("closing a destroyed stream", func(t *testing.T) {
		file := &fakeFile{}
		s := newFakeStream(file)

		require.NoError(t, s.Close())
		err := s.Close()
		assert.ErrorIs(t, err, ErrClosed)
		assert.Equal(t, int32(1), file.closes.Load())
	})
}

func TestFileStream_QueryCapability(t *testing.T) {
	tests := []struct {
		name    string
		id      Capability
		wantErr error
	}{
		{"base capability", CapabilityObject, nil},
		{"stream capability", CapabilityStream, nil},
		{"unknown capability", uuid.MustParse("00000109-0000-0000-c000-000000000046"), ErrNoInterface},
		{"nil capability", uuid.Nil, ErrNoInterface},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &fakeFile{}
			s := newFakeStream(file)

			obj, err := s.QueryCapability(tt.id)
			if tt.wantErr != nil {
				assert.Nil(t, obj)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, ferrors.CodeNoInterface, ferrors.CodeOf(err))
				assert.Equal(t, int32(0), s.Release(), "failed query must not add a reference")
				return
			}

			require.NoError(t, err)
			assert.Same(t, s, obj)
			_, isStream := obj.(Stream)
			assert.True(t, isStream)

			assert.Equal(t, int32(1), obj.Release())
			assert.Equal(t, int32(0), s.Release())
			assert.Equal(t, int32(1), file.closes.Load())
		})
	}

	t.Run("destroyed stream", func(t *testing.T) {
		s := newFakeStream(&fakeFile{})
		s.Release()

		obj, err := s.QueryCapability(CapabilityStream)
		assert.Nil(t, obj)
		assert.ErrorIs(t, err, ErrClosed)
	})
}

func TestFileStream_ConcurrentRetainRelease(t *testing.T) {
	const (
		workers = 32
		rounds  = 500
	)

	file := &fakeFile{}
	s := newFakeStream(file)

	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			for range rounds {
				if s.Retain() < 2 {
					return errors.New("retain observed a dead stream")
				}
				if s.Release() < 1 {
					return errors.New("release destroyed a shared stream")
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Zero(t, file.closes.Load())

	assert.Equal(t, int32(0), s.Release())
	assert.Equal(t, int32(1), file.closes.Load())
}

func TestFileStream_ConcurrentFinalRelease(t *testing.T) {
	const holders = 64

	file := &fakeFile{}
	s := newFakeStream(file)
	for range holders - 1 {
		s.Retain()
	}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for range holders + 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			s.Release()
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), file.closes.Load())
}

func TestFileStream_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := newFileStream(&fakeFile{}, "traced.bin", ModeRead, logger)
	s.Retain()
	s.Release()
	s.Release()
	s.Release()

	out := buf.String()
	assert.Contains(t, out, "stream retained")
	assert.Contains(t, out, "stream destroyed")
	assert.Contains(t, out, "path=traced.bin")
	assert.Equal(t, 1, strings.Count(out, "release on destroyed stream"))
}
