package streamtest

import (
	"errors"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/stream"
	"github.com/input-output-hk/catalyst-forge-libs/stream/fs"
)

// TestLifetime tests reference counting and capability queries.
func TestLifetime(t *testing.T, fsys fs.Filesystem, root string) {
	t.Run("Counts", func(t *testing.T) {
		testCounts(t, fsys, join(root, "counts.bin"))
	})
	t.Run("QueryCapability", func(t *testing.T) {
		testQueryCapability(t, fsys, join(root, "query.bin"))
	})
	t.Run("ReopenAfterRelease", func(t *testing.T) {
		testReopenAfterRelease(t, fsys, join(root, "reopen.bin"))
	})
}

func testCounts(t *testing.T, fsys fs.Filesystem, path string) {
	s := create(t, fsys, path, stream.ModeCreate|stream.ModeReadWrite)

	if got := s.Retain(); got != 2 {
		t.Errorf("Retain(): got %d, want 2", got)
	}
	if got := s.Release(); got != 1 {
		t.Errorf("Release(): got %d, want 1", got)
	}
	if _, err := s.Write([]byte("alive")); err != nil {
		t.Errorf("Write() with one reference: got error %v, want nil", err)
	}
	if got := s.Release(); got != 0 {
		t.Errorf("final Release(): got %d, want 0", got)
	}
	if got := s.Release(); got != 0 {
		t.Errorf("Release() on destroyed stream: got %d, want 0", got)
	}
	if _, err := s.Write([]byte("dead")); !errors.Is(err, stream.ErrClosed) {
		t.Errorf("Write() on destroyed stream: got error %v, want %v", err, stream.ErrClosed)
	}
}

func testQueryCapability(t *testing.T, fsys fs.Filesystem, path string) {
	s := create(t, fsys, path, stream.ModeCreate|stream.ModeReadWrite)
	defer closeStream(t, s)

	for _, id := range []stream.Capability{stream.CapabilityObject, stream.CapabilityStream} {
		obj, err := s.QueryCapability(id)
		if err != nil {
			t.Fatalf("QueryCapability(%s): got error %v, want nil", id, err)
		}
		if got := obj.Release(); got != 1 {
			t.Errorf("Release() after QueryCapability(%s): got %d, want 1", id, got)
		}
	}

	var unknown stream.Capability
	unknown[0] = 0xff
	obj, err := s.QueryCapability(unknown)
	if !errors.Is(err, stream.ErrNoInterface) {
		t.Errorf("QueryCapability(%s): got error %v, want %v", unknown, err, stream.ErrNoInterface)
	}
	if obj != nil {
		t.Errorf("QueryCapability(%s): got %v, want nil", unknown, obj)
	}
}

func testReopenAfterRelease(t *testing.T, fsys fs.Filesystem, path string) {
	w := create(t, fsys, path, stream.ModeCreate|stream.ModeReadWrite)
	if _, err := w.Write([]byte("first")); err != nil {
		t.Fatalf("Write(): got error %v, want nil", err)
	}
	if got := w.Release(); got != 0 {
		t.Fatalf("Release(): got %d, want 0", got)
	}

	r := create(t, fsys, path, stream.ModeRead|stream.ModeOpenExisting)
	defer closeStream(t, r)

	got := make([]byte, 5)
	if n, err := r.Read(got); err != nil || string(got[:n]) != "first" {
		t.Errorf("Read(): got (%q, %v), want (%q, nil)", got[:n], err, "first")
	}
}
