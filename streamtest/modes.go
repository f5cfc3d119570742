package streamtest

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/stream"
	ferrors "github.com/input-output-hk/catalyst-forge-libs/stream/errors"
	"github.com/input-output-hk/catalyst-forge-libs/stream/fs"
)

// TestModes tests how the creation and access fields of a Mode are honoured.
func TestModes(t *testing.T, fsys fs.Filesystem, root string) {
	t.Run("OpenExistingMissing", func(t *testing.T) {
		testOpenExistingMissing(t, fsys, join(root, "missing.bin"))
	})
	t.Run("CreateTruncates", func(t *testing.T) {
		testCreateTruncates(t, fsys, join(root, "truncated.bin"))
	})
	t.Run("OpenExistingKeeps", func(t *testing.T) {
		testOpenExistingKeeps(t, fsys, join(root, "kept.bin"))
	})
	t.Run("Rejected", func(t *testing.T) {
		testRejected(t, fsys, join(root, "rejected.bin"))
	})
}

func testOpenExistingMissing(t *testing.T, fsys fs.Filesystem, path string) {
	s, err := stream.CreateOnFile(path, stream.ModeRead|stream.ModeOpenExisting, stream.WithFilesystem(fsys))
	if err == nil {
		_ = s.Close()
		t.Fatalf("CreateOnFile(%q) on missing file: got nil error", path)
	}
	if s != nil {
		t.Errorf("CreateOnFile(%q) on missing file: got stream %v, want nil", path, s)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CreateOnFile(%q): got error %v, want os.ErrNotExist", path, err)
	}
	if code := ferrors.CodeOf(err); code != ferrors.CodeNotFound {
		t.Errorf("CodeOf(): got %s, want %s", code, ferrors.CodeNotFound)
	}
}

func testCreateTruncates(t *testing.T, fsys fs.Filesystem, path string) {
	for _, access := range []stream.Mode{stream.ModeRead, stream.ModeWrite, stream.ModeReadWrite} {
		if err := fsys.WriteFile(path, []byte("previous"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q): setup failed: %v", path, err)
		}

		mode := access | stream.ModeCreate
		s := create(t, fsys, path, mode)
		end, err := s.Seek(0, io.SeekEnd)
		closeStream(t, s)
		if err != nil || end != 0 {
			t.Errorf("%v: Seek(0, SeekEnd): got (%d, %v), want (0, nil)", mode, end, err)
		}
	}
}

func testOpenExistingKeeps(t *testing.T, fsys fs.Filesystem, path string) {
	want := []byte("keep me")
	if err := fsys.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", path, err)
	}

	s := create(t, fsys, path, stream.ModeWrite|stream.ModeOpenExisting)
	defer closeStream(t, s)

	// ModeWrite streams can read as well.
	got := make([]byte, len(want))
	if _, err := io.ReadFull(s, got); err != nil {
		t.Fatalf("ReadFull(): got error %v, want nil", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ReadFull(): got %q, want %q", got, want)
	}
}

func testRejected(t *testing.T, fsys fs.Filesystem, path string) {
	tests := []struct {
		mode    stream.Mode
		wantErr error
	}{
		{stream.ModeReadWrite | stream.ModeCreate | stream.ModeTransacted, stream.ErrInvalidArgument},
		{stream.ModeRead | stream.ModeOpenExisting | stream.ModeTransacted, stream.ErrInvalidArgument},
		{stream.Mode(0x3) | stream.ModeCreate, stream.ErrInvalidFlag},
		{stream.ModeReadWrite | stream.Mode(0x2000), stream.ErrInvalidFlag},
	}

	for _, tt := range tests {
		s, err := stream.CreateOnFile(path, tt.mode, stream.WithFilesystem(fsys))
		if s != nil {
			_ = s.Close()
			t.Errorf("CreateOnFile(%v): got stream, want nil", tt.mode)
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("CreateOnFile(%v): got error %v, want %v", tt.mode, err, tt.wantErr)
		}
	}

	ok, err := fsys.Exists(path)
	if err != nil {
		t.Fatalf("Exists(%q): got error %v", path, err)
	}
	if ok {
		t.Errorf("Exists(%q) after rejected modes: got true, want false", path)
	}
}
