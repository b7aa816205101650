package tui

import (
	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/mount"
)

// Entry is one line of the directory pane.
type Entry struct {
	mount.Entry
}

func NewEntries(entries []mount.Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{Entry: e})
	}
	return out
}

// DisplayName returns the name with appropriate indicator
func (e Entry) DisplayName() string {
	if e.Kind == data.EntryFile {
		return e.Name
	}
	return e.Name + "/"
}

// Tag marks directories and mount anchors.
func (e Entry) Tag() string {
	switch e.Kind {
	case data.EntryMountAnchor:
		return "<MNT>"
	case data.EntryDirectory:
		return "<DIR>"
	default:
		return ""
	}
}
