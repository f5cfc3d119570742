package streamtest

import (
	"errors"
	"math"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/stream"
	ferrors "github.com/input-output-hk/catalyst-forge-libs/stream/errors"
	"github.com/input-output-hk/catalyst-forge-libs/stream/fs"
)

// TestUnsupported checks that every optional Stream operation fails with
// ErrNotImplemented and leaves the stream usable.
func TestUnsupported(t *testing.T, fsys fs.Filesystem, root string) {
	s := create(t, fsys, join(root, "unsupported.bin"), stream.ModeCreate|stream.ModeReadWrite)
	defer closeStream(t, s)

	calls := []struct {
		name string
		call func() error
	}{
		{"CopyTo", func() error {
			read, written, err := s.CopyTo(s, 16)
			if read != 0 || written != 0 {
				t.Errorf("CopyTo(): got (%d, %d) bytes, want (0, 0)", read, written)
			}
			return err
		}},
		{"Commit", func() error { return s.Commit(0) }},
		{"Revert", func() error { return s.Revert() }},
		{"LockRegion", func() error { return s.LockRegion(0, math.MaxUint64, stream.LockWrite) }},
		{"UnlockRegion", func() error { return s.UnlockRegion(0, math.MaxUint64, stream.LockWrite) }},
		{"Stat", func() error {
			info, err := s.Stat(0)
			if info != nil {
				t.Errorf("Stat(): got %v, want nil", info)
			}
			return err
		}},
		{"Clone", func() error {
			c, err := s.Clone()
			if c != nil {
				t.Errorf("Clone(): got %v, want nil", c)
			}
			return err
		}},
	}

	for _, c := range calls {
		t.Run(c.name, func(t *testing.T) {
			err := c.call()
			if !errors.Is(err, stream.ErrNotImplemented) {
				t.Errorf("%s(): got error %v, want %v", c.name, err, stream.ErrNotImplemented)
			}
			if code := ferrors.CodeOf(err); code != ferrors.CodeNotImplemented {
				t.Errorf("%s(): got code %s, want %s", c.name, code, ferrors.CodeNotImplemented)
			}
		})
	}

	if _, err := s.Write([]byte("still usable")); err != nil {
		t.Errorf("Write() after unsupported calls: got error %v, want nil", err)
	}
}
