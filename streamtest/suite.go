// Package streamtest provides a conformance test suite for streams created
// with stream.CreateOnFile on top of an fs.Filesystem provider.
//
// Providers run the suite from their own tests to check that a stream over
// their files honours the Stream contract: pass-through I/O, mode handling,
// unsupported operations and reference-counted lifetime.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    streamtest.TestSuite(t, func(t *testing.T) (fs.Filesystem, string) {
//	        return myprovider.New(), "/"
//	    })
//	}
package streamtest

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/stream/fs"
)

// NewFS returns a fresh, empty filesystem and the directory inside it that
// tests may create files in.
type NewFS func(t *testing.T) (fs.Filesystem, string)

// TestSuite runs all conformance tests against streams opened on a provider.
// newFS is called once per group so every group starts clean.
func TestSuite(t *testing.T, newFS NewFS) {
	TestSuiteWithSkip(t, newFS, nil)
}

// TestSuiteWithSkip runs conformance tests with optional test skipping.
// The skipTests parameter lists group names to skip (e.g., "Lifetime").
func TestSuiteWithSkip(t *testing.T, newFS NewFS, skipTests []string) {
	groups := []struct {
		name string
		run  func(t *testing.T, fsys fs.Filesystem, root string)
	}{
		{"ReadWrite", TestReadWrite},
		{"Modes", TestModes},
		{"Unsupported", TestUnsupported},
		{"Lifetime", TestLifetime},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if slices.Contains(skipTests, g.name) {
				t.Skip("Skipped by provider configuration")
				return
			}
			fsys, root := newFS(t)
			g.run(t, fsys, root)
		})
	}
}

func join(root, name string) string {
	return filepath.Join(root, name)
}
