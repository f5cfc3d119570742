// Package stream exposes a file through a generic, reference-counted byte
// stream so that consumers (shortcut loaders and the like) do not depend on
// file-handle APIs directly.
//
// A stream is created with CreateOnFile and supports Read, Write, Seek and
// SetSize as direct pass-throughs to the file. CopyTo, Commit, Revert,
// LockRegion, UnlockRegion, Stat and Clone always fail with ErrNotImplemented.
//
// # Lifetime
//
// Streams start with one reference. Retain and QueryCapability add references,
// Release drops them, and the file is closed exactly once when the count
// reaches zero. Close is Release for use with defer:
//
//	s, err := stream.CreateOnFile("/tmp/app.lnk", stream.ModeRead|stream.ModeOpenExisting)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
// # Errors
//
// Every failure carries an errors.ErrorCode from the errors subpackage and
// wraps either one of this package's sentinels or the provider's OS error:
//
//	if errors.Is(err, stream.ErrNotImplemented) { ... }
//	code := ferrors.CodeOf(err) // e.g. ferrors.CodeNotFound
//
// # Providers
//
// Files are opened through an fs.Filesystem. The default is the native
// filesystem via go-billy; WithFilesystem swaps in any other provider, such as
// billy.NewInMemoryFS().
package stream
