package memory

import (
	"context"

	"github.com/mwantia/kvfs/data"
)

func (mb *MemoryBackend) LoadDirectory(ctx context.Context, ino data.Inode) (*data.Directory, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	dir, ok := mb.directories.Get(ino)
	if !ok {
		return nil, data.ErrNotExist
	}
	return dir.Clone(), nil
}

func (mb *MemoryBackend) StoreDirectory(ctx context.Context, ino data.Inode, dir *data.Directory) error {
	if dir == nil {
		return data.ErrInvalid
	}

	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.directories.Set(ino, dir.Clone())
	return nil
}

func (mb *MemoryBackend) DeleteDirectory(ctx context.Context, ino data.Inode) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if _, ok := mb.directories.Delete(ino); !ok {
		return data.ErrNotExist
	}
	return nil
}

func (mb *MemoryBackend) Directories(ctx context.Context) ([]data.Inode, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	return mb.directories.Keys(), nil
}

func (mb *MemoryBackend) LoadFile(ctx context.Context, ino data.Inode) (*data.File, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	file, ok := mb.files.Get(ino)
	if !ok {
		return nil, data.ErrNotExist
	}
	return file.Clone(), nil
}

func (mb *MemoryBackend) StoreFile(ctx context.Context, ino data.Inode, file *data.File) error {
	if file == nil {
		return data.ErrInvalid
	}

	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.files.Set(ino, file.Clone())
	return nil
}

func (mb *MemoryBackend) DeleteFile(ctx context.Context, ino data.Inode) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if _, ok := mb.files.Delete(ino); !ok {
		return data.ErrNotExist
	}
	return nil
}

func (mb *MemoryBackend) Files(ctx context.Context) ([]data.Inode, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	return mb.files.Keys(), nil
}
