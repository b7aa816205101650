package mount

import (
	"context"
	"fmt"
	"time"

	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/log"
)

// Operations is the capability set every mounted filesystem provides to the registry.
type Operations interface {
	// MakeDirectory creates an ordinary child directory in the current directory.
	MakeDirectory(ctx context.Context, name string) error
	// MakeMountAnchor plants a portal entry pointing at the registry index target.
	MakeMountAnchor(ctx context.Context, name string, target int) error
	// MakeFile creates an empty file in the current directory.
	MakeFile(ctx context.Context, name string) error
	// ReadFile returns the content of a file in the current directory,
	// regenerating it first when the filesystem synthesizes that name.
	ReadFile(ctx context.Context, name string) ([]byte, error)
	// WriteFile parses "<name> <payload...>" and overwrites the named file.
	WriteFile(ctx context.Context, command string) error
	RemoveDirectory(ctx context.Context, name string) error
	RemoveFile(ctx context.Context, name string) error

	// Path renders the current directory prefixed by the device name,
	// or by a single slash for the top-level filesystem.
	Path(ctx context.Context) (string, error)
	// List returns the subdirectories, then the files, of the current directory.
	List(ctx context.Context) ([]Entry, error)
	ChangeDirectory(ctx context.Context, name string) (Transition, error)

	Superblock() data.Superblock
	DeviceName() string
	CurrentInode() data.Inode
	// Host returns the registry index of the filesystem this one is mounted in.
	Host() (int, bool)
	StorageName() string

	SpeedTest(ctx context.Context) (SpeedReport, error)
	SpeedTestLarge(ctx context.Context) (SpeedReport, error)
	Dump(ctx context.Context) (string, error)

	Close(ctx context.Context) error
}

// Entry is one line of a directory listing.
type Entry struct {
	Inode data.Inode     `json:"inode"`
	Name  string         `json:"name"`
	Kind  data.EntryKind `json:"kind"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%s - %s", e.Kind.Marker(), e.Name)
}

type TransitionKind int

const (
	// TransitionStay keeps the active filesystem.
	TransitionStay TransitionKind = iota
	// TransitionAscend moves to the hosting filesystem.
	TransitionAscend
	// TransitionDescend moves into a mounted filesystem.
	TransitionDescend
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionAscend:
		return "ascend"
	case TransitionDescend:
		return "descend"
	default:
		return "stay"
	}
}

// Transition tells the registry whether a directory change crossed a filesystem boundary.
type Transition struct {
	Kind TransitionKind
	// Target is the registry index to activate for Ascend and Descend.
	Target int
	// Name of the crossed mount anchor, only set for Descend.
	Name string
}

// SpeedReport summarizes one throughput self-test.
type SpeedReport struct {
	Entries int
	Bytes   int
	Cycles  uint64
	Elapsed time.Duration
}

// Op identifies a mutating operation for Hooks.Allow.
type Op int

const (
	OpMakeDirectory Op = iota
	OpMakeMountAnchor
	OpMakeFile
	OpWrite
	OpRemoveDirectory
	OpRemoveFile
)

func (op Op) String() string {
	switch op {
	case OpMakeDirectory:
		return "mkdir"
	case OpMakeMountAnchor:
		return "mount"
	case OpMakeFile:
		return "touch"
	case OpWrite:
		return "write"
	case OpRemoveDirectory:
		return "rmd"
	case OpRemoveFile:
		return "rmf"
	default:
		return "unknown"
	}
}

// Tree is the lock-held view of a Filesystem handed to Hooks.
// Its methods must not be retained beyond the hook call.
type Tree interface {
	Device() string
	Current() data.Inode
	Logger() *log.Logger
	Dump(ctx context.Context) (string, error)

	// ProvisionDirectory and ProvisionFile bypass Hooks.Allow.
	ProvisionDirectory(ctx context.Context, parent data.Inode, name string) (data.Inode, error)
	ProvisionFile(ctx context.Context, parent data.Inode, name string, content []byte) (data.Inode, error)
}

// Hooks is the policy a filesystem back-end plugs into the generic engine.
type Hooks interface {
	// Provision creates the entries that exist right after construction.
	Provision(ctx context.Context, tree Tree) error
	// Generate may synthesize the content of name before it is read.
	// The returned content is stored into the file when handled is true.
	Generate(ctx context.Context, tree Tree, name string) (content []byte, handled bool, err error)
	// Allow refuses op on name with a policy error.
	Allow(op Op, name string) error
	// Write returns the content to store for a permitted write.
	Write(ctx context.Context, tree Tree, name, payload string) ([]byte, error)
}

// BaseHooks permits everything and stores payloads verbatim.
type BaseHooks struct{}

func (BaseHooks) Provision(ctx context.Context, tree Tree) error {
	return nil
}

func (BaseHooks) Generate(ctx context.Context, tree Tree, name string) ([]byte, bool, error) {
	return nil, false, nil
}

func (BaseHooks) Allow(op Op, name string) error {
	return nil
}

func (BaseHooks) Write(ctx context.Context, tree Tree, name, payload string) ([]byte, error) {
	return []byte(payload), nil
}
