package stream

import (
	"io"
	iofs "io/fs"

	"github.com/google/uuid"
)

// Capability identifies an interface an Object can be queried for.
type Capability = uuid.UUID

// Well-known capabilities. The values are the identifiers the host object
// model uses for its base and stream interfaces.
var (
	// CapabilityObject is the base capability every Object answers to.
	CapabilityObject = uuid.MustParse("00000000-0000-0000-c000-000000000046")

	// CapabilityStream is the byte stream capability.
	CapabilityStream = uuid.MustParse("0000000c-0000-0000-c000-000000000046")
)

// Object is a reference-counted value supporting capability queries.
type Object interface {
	// QueryCapability returns the object with one extra reference if it
	// supports id, and ErrNoInterface otherwise.
	QueryCapability(id Capability) (Object, error)

	// Retain adds a reference and returns the new count.
	Retain() int32

	// Release drops a reference and returns the new count. The object is
	// destroyed when the count reaches zero.
	Release() int32
}

// LockType selects the kind of region lock for LockRegion and UnlockRegion.
type LockType uint32

// Region lock types.
const (
	LockWrite     LockType = 1
	LockExclusive LockType = 2
	LockOnlyOnce  LockType = 4
)

// CommitFlags controls Commit.
type CommitFlags uint32

// StatFlags controls Stat.
type StatFlags uint32

// Stream is a seekable, resizable byte stream.
type Stream interface {
	Object
	io.ReadWriteSeeker

	// SetSize truncates or extends the stream to size bytes and leaves the
	// position at size.
	SetSize(size uint64) error

	CopyTo(dst Stream, n uint64) (read, written uint64, err error)
	Commit(flags CommitFlags) error
	Revert() error
	LockRegion(offset, length uint64, lockType LockType) error
	UnlockRegion(offset, length uint64, lockType LockType) error
	Stat(flags StatFlags) (iofs.FileInfo, error)
	Clone() (Stream, error)
}
