package mount

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mwantia/kvfs/data"
)

// This file contains internal "unsafe" methods that perform operations without acquiring locks.
// These methods MUST only be called when the caller already holds the appropriate lock.

func (fs *Filesystem) loadDirectoryUnsafe(ctx context.Context, ino data.Inode) (*data.Directory, error) {
	dir, err := fs.storage.LoadDirectory(ctx, ino)
	if errors.Is(err, data.ErrNotExist) {
		return nil, data.Inconsistent("directory", ino, "")
	}
	return dir, err
}

func (fs *Filesystem) loadFileUnsafe(ctx context.Context, ino data.Inode, name string) (*data.File, error) {
	file, err := fs.storage.LoadFile(ctx, ino)
	if errors.Is(err, data.ErrNotExist) {
		return nil, data.Inconsistent("file", ino, name)
	}
	return file, err
}

// createDirectoryUnsafe allocates the inode, stores the new directory and links it into parent.
// A NoInode parent is only used for the root directory.
func (fs *Filesystem) createDirectoryUnsafe(ctx context.Context, parent data.Inode, name string, kind data.EntryKind, target int) (data.Inode, error) {
	var parentDir *data.Directory
	if parent != data.NoInode {
		dir, err := fs.loadDirectoryUnsafe(ctx, parent)
		if err != nil {
			return data.NoInode, err
		}
		if _, _, exists := dir.LookupSubdirectory(name); exists {
			return data.NoInode, data.DirectoryExists(name)
		}
		parentDir = dir
	}

	var ino data.Inode
	if kind == data.EntryMountAnchor {
		fs.nextMountSlot--
		ino = fs.nextMountSlot
	} else {
		fs.nextInode++
		ino = fs.nextInode
	}

	if err := fs.storage.StoreDirectory(ctx, ino, data.NewDirectory(name, parent)); err != nil {
		return data.NoInode, err
	}

	if parentDir != nil {
		parentDir.Subdirectories[ino] = data.Subdirectory{
			Name:   name,
			Kind:   kind,
			Target: target,
		}
		if err := fs.storage.StoreDirectory(ctx, parent, parentDir); err != nil {
			return data.NoInode, err
		}
	}

	fs.sb.DirCount++
	return ino, nil
}

func (fs *Filesystem) createFileUnsafe(ctx context.Context, parent data.Inode, name string) (data.Inode, error) {
	dir, err := fs.loadDirectoryUnsafe(ctx, parent)
	if err != nil {
		return data.NoInode, err
	}
	if _, exists := dir.LookupFile(name); exists {
		return data.NoInode, data.FileExists(name)
	}

	fs.nextInode++
	ino := fs.nextInode

	if err := fs.storage.StoreFile(ctx, ino, data.NewFile(name)); err != nil {
		return data.NoInode, err
	}

	dir.Files[ino] = name
	if err := fs.storage.StoreDirectory(ctx, parent, dir); err != nil {
		return data.NoInode, err
	}

	fs.sb.FileCount++
	return ino, nil
}

func (fs *Filesystem) storeContentUnsafe(ctx context.Context, ino data.Inode, name string, content []byte) error {
	if fs.maxFileSize > 0 && int64(len(content)) > fs.maxFileSize {
		return data.Invalid("content of '%s' exceeds %d bytes", name, fs.maxFileSize)
	}

	file, err := fs.loadFileUnsafe(ctx, ino, name)
	if err != nil {
		return err
	}

	file.Content = content
	return fs.storage.StoreFile(ctx, ino, file)
}

// collectSubtreeUnsafe returns every directory and file below and including root.
// It fails with a mount busy error as soon as a mount anchor is found.
func (fs *Filesystem) collectSubtreeUnsafe(ctx context.Context, root data.Inode, name string) ([]data.Inode, []data.Inode, error) {
	dirs := []data.Inode{}
	files := []data.Inode{}

	queue := []data.Inode{root}
	for len(queue) > 0 {
		ino := queue[0]
		queue = queue[1:]

		dir, err := fs.loadDirectoryUnsafe(ctx, ino)
		if err != nil {
			return nil, nil, err
		}
		dirs = append(dirs, ino)

		for _, child := range dir.SubdirectoryInodes() {
			sub := dir.Subdirectories[child]
			if sub.IsMountAnchor() {
				return nil, nil, data.MountBusy(fmt.Sprintf("%s/%s", name, sub.Name))
			}
			queue = append(queue, child)
		}
		files = append(files, dir.FileInodes()...)
	}

	return dirs, files, nil
}

func (fs *Filesystem) pathUnsafe(ctx context.Context) (string, error) {
	var segments []string

	cur := fs.cwd
	for cur != data.RootInode && cur != data.NoInode {
		dir, err := fs.loadDirectoryUnsafe(ctx, cur)
		if err != nil {
			return "", err
		}
		segments = append([]string{dir.Name + "/"}, segments...)
		cur = dir.Parent
	}

	path := strings.Join(segments, "")
	if !fs.hasHost {
		return "/" + path, nil
	}
	return fs.sb.Device + "/" + path, nil
}

func (fs *Filesystem) dumpUnsafe(ctx context.Context) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "InodeCount: %d\n", fs.nextInode)
	fmt.Fprintf(&sb, "Current Path: %d\n", fs.cwd)
	sb.WriteString("Inode   Dirname/Filename\n")

	dirs, err := fs.storage.Directories(ctx)
	if err != nil {
		return "", err
	}
	for _, ino := range dirs {
		dir, err := fs.loadDirectoryUnsafe(ctx, ino)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%d       %s\n", ino, dir.Name)
	}

	files, err := fs.storage.Files(ctx)
	if err != nil {
		return "", err
	}
	for _, ino := range files {
		file, err := fs.loadFileUnsafe(ctx, ino, "")
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%d       %s\n", ino, file.Name)
	}

	return sb.String(), nil
}
