package streamtest

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/stream"
	ferrors "github.com/input-output-hk/catalyst-forge-libs/stream/errors"
	"github.com/input-output-hk/catalyst-forge-libs/stream/fs"
)

// TestReadWrite tests Read, Write, Seek and SetSize as pass-throughs to the file.
func TestReadWrite(t *testing.T, fsys fs.Filesystem, root string) {
	t.Run("RoundTrip", func(t *testing.T) {
		testRoundTrip(t, fsys, join(root, "roundtrip.bin"))
	})
	t.Run("ReadAtEnd", func(t *testing.T) {
		testReadAtEnd(t, fsys, join(root, "end.bin"))
	})
	t.Run("SeekEnd", func(t *testing.T) {
		testSeekEnd(t, fsys, join(root, "seekend.bin"))
	})
	t.Run("SetSize", func(t *testing.T) {
		testSetSize(t, fsys, join(root, "setsize.bin"))
	})
}

func create(t *testing.T, fsys fs.Filesystem, path string, mode stream.Mode) *stream.FileStream {
	t.Helper()
	s, err := stream.CreateOnFile(path, mode, stream.WithFilesystem(fsys))
	if err != nil {
		t.Fatalf("CreateOnFile(%q, %v): got error %v, want nil", path, mode, err)
	}
	return s
}

func closeStream(t *testing.T, s *stream.FileStream) {
	t.Helper()
	if err := s.Close(); err != nil {
		t.Errorf("Close(): got error %v, want nil", err)
	}
}

// testRoundTrip writes four bytes, rewinds and reads them back.
func testRoundTrip(t *testing.T, fsys fs.Filesystem, path string) {
	want := []byte{1, 2, 3, 4}

	s := create(t, fsys, path, stream.ModeCreate|stream.ModeReadWrite)
	defer closeStream(t, s)

	n, err := s.Write(want)
	if err != nil || n != len(want) {
		t.Fatalf("Write(): got (%d, %v), want (%d, nil)", n, err, len(want))
	}

	pos, err := s.Seek(0, io.SeekStart)
	if err != nil || pos != 0 {
		t.Fatalf("Seek(0, SeekStart): got (%d, %v), want (0, nil)", pos, err)
	}

	got := make([]byte, len(want))
	n, err = s.Read(got)
	if err != nil || n != len(want) {
		t.Fatalf("Read(): got (%d, %v), want (%d, nil)", n, err, len(want))
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Read(): got %v, want %v", got, want)
	}
}

// testReadAtEnd checks that reading past the data reports io.EOF.
func testReadAtEnd(t *testing.T, fsys fs.Filesystem, path string) {
	if err := fsys.WriteFile(path, []byte("ab"), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", path, err)
	}

	s := create(t, fsys, path, stream.ModeRead|stream.ModeOpenExisting)
	defer closeStream(t, s)

	buf := make([]byte, 8)
	n, err := s.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("Read(): got error %v, want nil or EOF", err)
	}
	if n != 2 {
		t.Fatalf("Read(): read %d bytes, want 2", n)
	}

	n, err = s.Read(buf)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("Read() at end: got (%d, %v), want (0, EOF)", n, err)
	}
}

// testSeekEnd checks that seeking relative to the end reports the file size.
func testSeekEnd(t *testing.T, fsys fs.Filesystem, path string) {
	s := create(t, fsys, path, stream.ModeCreate|stream.ModeReadWrite)
	defer closeStream(t, s)

	if _, err := s.Write([]byte("0123456789")); err != nil {
		t.Fatalf("Write(): got error %v, want nil", err)
	}

	pos, err := s.Seek(-3, io.SeekEnd)
	if err != nil || pos != 7 {
		t.Fatalf("Seek(-3, SeekEnd): got (%d, %v), want (7, nil)", pos, err)
	}
	pos, err = s.Seek(1, io.SeekCurrent)
	if err != nil || pos != 8 {
		t.Fatalf("Seek(1, SeekCurrent): got (%d, %v), want (8, nil)", pos, err)
	}

	if _, err := s.Seek(-20, io.SeekEnd); ferrors.CodeOf(err) != ferrors.CodeInvalidInput {
		t.Errorf("Seek(-20, SeekEnd): got error %v, want code %s", err, ferrors.CodeInvalidInput)
	}
	if pos, err := s.Seek(0, io.SeekCurrent); err != nil || pos != 8 {
		t.Errorf("Seek(0, SeekCurrent) after rejected seek: got (%d, %v), want (8, nil)", pos, err)
	}

	if _, err := s.Seek(0, 7); !errors.Is(err, stream.ErrInvalidFlag) {
		t.Errorf("Seek(0, 7): got error %v, want %v", err, stream.ErrInvalidFlag)
	}
}

// testSetSize checks shrinking and growing, and that the position lands on the new end.
func testSetSize(t *testing.T, fsys fs.Filesystem, path string) {
	s := create(t, fsys, path, stream.ModeCreate|stream.ModeReadWrite)

	if _, err := s.Write([]byte("0123456789")); err != nil {
		t.Fatalf("Write(): got error %v, want nil", err)
	}

	if err := s.SetSize(4); err != nil {
		t.Fatalf("SetSize(4): got error %v, want nil", err)
	}
	if pos, err := s.Seek(0, io.SeekCurrent); err != nil || pos != 4 {
		t.Fatalf("Seek(0, SeekCurrent) after SetSize(4): got (%d, %v), want (4, nil)", pos, err)
	}
	if end, err := s.Seek(0, io.SeekEnd); err != nil || end != 4 {
		t.Fatalf("Seek(0, SeekEnd) after SetSize(4): got (%d, %v), want (4, nil)", end, err)
	}

	if err := s.SetSize(6); err != nil {
		t.Fatalf("SetSize(6): got error %v, want nil", err)
	}
	if _, err := s.Write([]byte("!")); err != nil {
		t.Fatalf("Write() after SetSize(6): got error %v, want nil", err)
	}
	closeStream(t, s)

	got, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v, want nil", path, err)
	}
	want := []byte("0123\x00\x00!")
	if !bytes.Equal(got, want) {
		t.Errorf("ReadFile(%q): got %q, want %q", path, got, want)
	}
}

