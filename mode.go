package stream

import (
	"fmt"
	"os"
	"strings"
)

// Mode is the bitmask describing how CreateOnFile opens a file.
// It combines one access value, one creation value and optional flags.
type Mode uint32

// Access values (mask 0x000f).
const (
	ModeRead      Mode = 0x00000000
	ModeWrite     Mode = 0x00000001
	ModeReadWrite Mode = 0x00000002
)

// Creation values (mask 0xf000).
const (
	// ModeOpenExisting opens the file only if it already exists.
	ModeOpenExisting Mode = 0x00000000
	// ModeCreate always creates the file, truncating an existing one.
	ModeCreate Mode = 0x00001000
)

// ModeTransacted requests transacted access. It is never supported.
const ModeTransacted Mode = 0x00010000

const (
	accessMask   Mode = 0x0000000f
	creationMask Mode = 0x0000f000
)

// Access returns the access sub-field.
func (m Mode) Access() Mode { return m & accessMask }

// Creation returns the creation sub-field.
func (m Mode) Creation() Mode { return m & creationMask }

// Transacted reports whether the transacted flag is set.
func (m Mode) Transacted() bool { return m&ModeTransacted != 0 }

// String renders the mode for logs, e.g. "readwrite|create".
func (m Mode) String() string {
	var parts []string
	switch m.Access() {
	case ModeRead:
		parts = append(parts, "read")
	case ModeWrite:
		parts = append(parts, "write")
	case ModeReadWrite:
		parts = append(parts, "readwrite")
	default:
		parts = append(parts, fmt.Sprintf("access(%#x)", uint32(m.Access())))
	}
	switch m.Creation() {
	case ModeOpenExisting:
		parts = append(parts, "openexisting")
	case ModeCreate:
		parts = append(parts, "create")
	default:
		parts = append(parts, fmt.Sprintf("creation(%#x)", uint32(m.Creation())))
	}
	if m.Transacted() {
		parts = append(parts, "transacted")
	}
	return strings.Join(parts, "|")
}

// openPlan is a decoded Mode.
type openPlan struct {
	flag     int
	writable bool
	// truncate defers truncation until the share lock is held.
	truncate bool
}

// plan decodes m into provider open flags. It never touches the filesystem.
func (m Mode) plan() (openPlan, error) {
	if m.Transacted() {
		return openPlan{}, ErrInvalidArgument
	}

	var p openPlan
	switch m.Access() {
	case ModeRead:
		p.flag = os.O_RDONLY
	case ModeWrite, ModeReadWrite:
		p.flag = os.O_RDWR
		p.writable = true
	default:
		return openPlan{}, ErrInvalidFlag
	}

	switch m.Creation() {
	case ModeCreate:
		p.flag |= os.O_CREATE
		p.truncate = true
	case ModeOpenExisting:
	default:
		return openPlan{}, ErrInvalidFlag
	}

	return p, nil
}
