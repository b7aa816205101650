package data

import (
	"errors"
	"fmt"
	"sync"
)

// Standard VFS errors that back-ends and the registry should use.
var (
	// Validation errors
	ErrExist   = errors.New("vfs: entry already exists")
	ErrInvalid = errors.New("vfs: invalid argument")

	// Lookup errors
	ErrNotExist     = errors.New("vfs: entry does not exist")
	ErrInconsistent = errors.New("vfs: entry missing from global table")

	// Policy errors
	ErrPermission = errors.New("vfs: operation not permitted")
	ErrReadOnly   = errors.New("vfs: read-only file")
	ErrMountBusy  = errors.New("vfs: mount point busy")

	// Registry errors
	ErrNotMounted     = errors.New("vfs: filesystem not mounted")
	ErrAlreadyMounted = errors.New("vfs: filesystem already mounted")
	ErrInvalidHost    = errors.New("vfs: invalid host filesystem")
)

// ErrorKind groups errors into the three failure classes reported to users.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindLookup
	KindPolicy
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindLookup:
		return "lookup"
	case KindPolicy:
		return "policy"
	default:
		return "internal"
	}
}

// KindOf classifies err by the sentinel it wraps.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrExist), errors.Is(err, ErrInvalid), errors.Is(err, ErrAlreadyMounted), errors.Is(err, ErrInvalidHost):
		return KindValidation
	case errors.Is(err, ErrNotExist), errors.Is(err, ErrInconsistent), errors.Is(err, ErrNotMounted):
		return KindLookup
	case errors.Is(err, ErrPermission), errors.Is(err, ErrReadOnly), errors.Is(err, ErrMountBusy):
		return KindPolicy
	default:
		return KindInternal
	}
}

type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}

// entryError carries a user facing message while still matching its sentinel through errors.Is.
type entryError struct {
	sentinel error
	text     string
}

func (e *entryError) Error() string {
	return "vfs: " + e.text
}

func (e *entryError) Unwrap() error {
	return e.sentinel
}

func newError(sentinel error, format string, args ...any) error {
	return &entryError{
		sentinel: sentinel,
		text:     fmt.Sprintf(format, args...),
	}
}

func DirectoryExists(name string) error {
	return newError(ErrExist, "directory '%s' already exists, please choose a different name", name)
}

func FileExists(name string) error {
	return newError(ErrExist, "file '%s' already exists, please choose a different name", name)
}

func DirectoryNotFound(name string) error {
	return newError(ErrNotExist, "cannot find directory '%s' inside the current dir", name)
}

func FileNotFound(name string) error {
	return newError(ErrNotExist, "cannot find file '%s' inside the current dir", name)
}

// Inconsistent reports an entry map pointing at an inode missing from its table.
func Inconsistent(table string, ino Inode, name string) error {
	return newError(ErrInconsistent, "cannot find '%s' (inode %d) in the global %s table", name, ino, table)
}

func Usage(usage string) error {
	return newError(ErrInvalid, "usage: %s", usage)
}

func Invalid(format string, args ...any) error {
	return newError(ErrInvalid, format, args...)
}

func UnknownCommand(verb string) error {
	return newError(ErrInvalid, "unknown command: %s", verb)
}

func ReadOnlyFile(name string) error {
	return newError(ErrReadOnly, "file '%s' is read-only", name)
}

// Refused reports an operation a filesystem does not support at all.
func Refused(device, action string) error {
	return newError(ErrPermission, "cannot %s in filesystem '%s'", action, device)
}

func ProtectedEntry(name string) error {
	return newError(ErrPermission, "cannot remove protected entry '%s'", name)
}

func MountBusy(name string) error {
	return newError(ErrMountBusy, "mount point '%s' busy", name)
}

func AlreadyMounted(device string) error {
	return newError(ErrAlreadyMounted, "device '%s' already mounted", device)
}

func InvalidHost(device string, host, active int) error {
	return newError(ErrInvalidHost, "device '%s' expects host %d but %d is active", device, host, active)
}
