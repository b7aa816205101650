package data

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindNone},
		{"duplicate directory", DirectoryExists("docs"), KindValidation},
		{"usage", Usage("write <filename> <message>"), KindValidation},
		{"unknown verb", UnknownCommand("frobnicate"), KindValidation},
		{"missing file", FileNotFound("note"), KindLookup},
		{"inconsistent table", Inconsistent("file", 4, "note"), KindLookup},
		{"read-only", ReadOnlyFile("meminfo"), KindPolicy},
		{"refused", Refused("proc", "add files"), KindPolicy},
		{"busy anchor", MountBusy("proc"), KindPolicy},
		{"wrapped", fmt.Errorf("cd failed: %w", DirectoryNotFound("x")), KindLookup},
		{"foreign", errors.New("disk on fire"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestEntryError_Message(t *testing.T) {
	err := DirectoryExists("docs")
	assert.Equal(t, "vfs: directory 'docs' already exists, please choose a different name", err.Error())
	assert.ErrorIs(t, err, ErrExist)
	assert.NotErrorIs(t, err, ErrNotExist)
}

func TestErrors_Aggregate(t *testing.T) {
	var errs Errors
	assert.NoError(t, errs.Errors())

	errs.Add(nil)
	errs.Add(ErrNotMounted)
	errs.Add(MountBusy("sys"))

	err := errs.Errors()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotMounted)
	assert.ErrorIs(t, err, ErrMountBusy)
}

func TestDirectory_Lookup(t *testing.T) {
	dir := NewDirectory("SVFS", NoInode)
	dir.Subdirectories[3] = Subdirectory{Name: "docs", Kind: EntryDirectory}
	dir.Subdirectories[-1] = Subdirectory{Name: "proc", Kind: EntryMountAnchor, Target: 1}
	dir.Files[2] = "docs"

	ino, sub, ok := dir.LookupSubdirectory("proc")
	require.True(t, ok)
	assert.Equal(t, Inode(-1), ino)
	assert.True(t, sub.IsMountAnchor())
	assert.Equal(t, 1, sub.Target)

	ino, ok = dir.LookupFile("docs")
	require.True(t, ok)
	assert.Equal(t, Inode(2), ino)

	_, _, ok = dir.LookupSubdirectory("missing")
	assert.False(t, ok)
	assert.False(t, dir.HasParent())

	assert.Equal(t, []Inode{-1, 3}, dir.SubdirectoryInodes())
	assert.Equal(t, []Inode{2}, dir.FileInodes())
}

func TestDirectory_CloneIsDeep(t *testing.T) {
	dir := NewDirectory("docs", RootInode)
	dir.Files[2] = "note"

	clone := dir.Clone()
	clone.Files[3] = "other"
	clone.Subdirectories[4] = Subdirectory{Name: "x"}

	assert.Len(t, dir.Files, 1)
	assert.Empty(t, dir.Subdirectories)
	assert.True(t, clone.HasParent())
}

func TestFile_CloneIsDeep(t *testing.T) {
	file := NewFile("note")
	file.Content = []byte("hello")

	clone := file.Clone()
	clone.Content[0] = 'j'

	assert.Equal(t, "hello", string(file.Content))
	assert.Equal(t, "jello", string(clone.Content))
}

func TestSuperblock(t *testing.T) {
	sb := NewSuperblock("SVFS")
	assert.NotEmpty(t, sb.ID)
	assert.Equal(t, int64(-1), sb.DirCount)
	assert.Equal(t, int64(0), sb.FileCount)

	sb.DirCount = 2
	sb.FileCount = 3
	assert.Equal(t, "Device: SVFS\nFilecount: 3\nDircount: 2", sb.Report())
}

func TestInode(t *testing.T) {
	assert.True(t, Inode(-2).IsAnchorSlot())
	assert.False(t, RootInode.IsAnchorSlot())
	assert.Equal(t, "d", EntryDirectory.Marker())
	assert.Equal(t, "d", EntryMountAnchor.Marker())
	assert.Equal(t, "f", EntryFile.Marker())
}
