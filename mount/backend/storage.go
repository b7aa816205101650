package backend

import (
	"context"

	"github.com/mwantia/kvfs/data"
)

// EntryStorage holds the directory table and the file table of one filesystem instance.
// Values handed in and out are copies: callers must store a directory again after changing it.
type EntryStorage interface {
	Backend

	// LoadDirectory returns data.ErrNotExist when ino is not in the directory table.
	LoadDirectory(ctx context.Context, ino data.Inode) (*data.Directory, error)
	// StoreDirectory inserts or replaces the directory stored under ino.
	StoreDirectory(ctx context.Context, ino data.Inode, dir *data.Directory) error
	DeleteDirectory(ctx context.Context, ino data.Inode) error
	// Directories returns all directory ids in ascending order.
	Directories(ctx context.Context) ([]data.Inode, error)

	// LoadFile returns data.ErrNotExist when ino is not in the file table.
	LoadFile(ctx context.Context, ino data.Inode) (*data.File, error)
	StoreFile(ctx context.Context, ino data.Inode, file *data.File) error
	DeleteFile(ctx context.Context, ino data.Inode) error
	// Files returns all file ids in ascending order.
	Files(ctx context.Context) ([]data.Inode, error)
}
