package data

import (
	"maps"
	"slices"
)

// Subdirectory is one tagged entry of a directory's subdirectory map.
type Subdirectory struct {
	Name string    `json:"name"`
	Kind EntryKind `json:"kind"`
	// Target is the registry index of the mounted filesystem.
	// Only meaningful for EntryMountAnchor.
	Target int `json:"target,omitempty"`
}

// IsMountAnchor reports whether traversing into this entry crosses into another filesystem.
func (s Subdirectory) IsMountAnchor() bool {
	return s.Kind == EntryMountAnchor
}

// Directory holds the entry maps of one directory.
type Directory struct {
	Name           string                 `json:"name"`
	Subdirectories map[Inode]Subdirectory `json:"subdirectories"`
	Files          map[Inode]string       `json:"files"`
	// Parent is NoInode only for the root directory.
	Parent Inode `json:"parent"`
}

func NewDirectory(name string, parent Inode) *Directory {
	return &Directory{
		Name:           name,
		Subdirectories: make(map[Inode]Subdirectory),
		Files:          make(map[Inode]string),
		Parent:         parent,
	}
}

// HasParent reports whether ".." can move out of this directory.
func (d *Directory) HasParent() bool {
	return d.Parent != NoInode
}

// LookupSubdirectory finds a subdirectory entry by name.
func (d *Directory) LookupSubdirectory(name string) (Inode, Subdirectory, bool) {
	for ino, sub := range d.Subdirectories {
		if sub.Name == name {
			return ino, sub, true
		}
	}
	return NoInode, Subdirectory{}, false
}

// LookupFile finds a file entry by name.
func (d *Directory) LookupFile(name string) (Inode, bool) {
	for ino, fname := range d.Files {
		if fname == name {
			return ino, true
		}
	}
	return NoInode, false
}

// SubdirectoryInodes returns the subdirectory ids in ascending order.
func (d *Directory) SubdirectoryInodes() []Inode {
	return slices.Sorted(maps.Keys(d.Subdirectories))
}

// FileInodes returns the file ids in ascending order.
func (d *Directory) FileInodes() []Inode {
	return slices.Sorted(maps.Keys(d.Files))
}

// Clone creates a deep copy of the directory.
func (d *Directory) Clone() *Directory {
	clone := &Directory{
		Name:           d.Name,
		Subdirectories: make(map[Inode]Subdirectory, len(d.Subdirectories)),
		Files:          make(map[Inode]string, len(d.Files)),
		Parent:         d.Parent,
	}
	maps.Copy(clone.Subdirectories, d.Subdirectories)
	maps.Copy(clone.Files, d.Files)

	return clone
}
