package data

import "fmt"

// Inode identifies a directory or file within one filesystem instance.
// Ordinary entries are strictly positive, mount anchors strictly negative.
type Inode int64

const (
	// NoInode is the synthetic bootstrap parent of every root directory.
	// It is never stored in a table.
	NoInode Inode = 0
	// RootInode is the root directory of every initialized filesystem.
	RootInode Inode = 1
)

// IsAnchorSlot reports whether the id lies in the mount anchor range.
func (i Inode) IsAnchorSlot() bool {
	return i < 0
}

func (i Inode) String() string {
	return fmt.Sprintf("%d", int64(i))
}

// EntryKind tags a subdirectory entry as a real child or a portal into another filesystem.
type EntryKind uint8

const (
	EntryDirectory EntryKind = iota
	EntryMountAnchor
	EntryFile
)

// Marker returns the one-character kind marker used by directory listings.
// Mount anchors list as directories.
func (k EntryKind) Marker() string {
	if k == EntryFile {
		return "f"
	}
	return "d"
}

func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryMountAnchor:
		return "mount"
	default:
		return "directory"
	}
}
