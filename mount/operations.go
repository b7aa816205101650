package mount

import (
	"context"
	"errors"
	"strings"

	"github.com/mwantia/kvfs/data"
)

func validateName(name, usage string) error {
	switch {
	case name == "":
		return data.Usage(usage)
	case name == "." || name == "..":
		return data.Invalid("'%s' is a reserved name", name)
	case strings.Contains(name, "/"):
		return data.Invalid("name '%s' must not contain '/'", name)
	}
	return nil
}

func (fs *Filesystem) MakeDirectory(ctx context.Context, name string) error {
	if err := validateName(name, "mkdir <dirname>"); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.hooks.Allow(OpMakeDirectory, name); err != nil {
		return err
	}

	ino, err := fs.createDirectoryUnsafe(ctx, fs.cwd, name, data.EntryDirectory, 0)
	if err != nil {
		return err
	}

	fs.log.Debug("Created directory '%s' with inode %d", name, ino)
	return nil
}

func (fs *Filesystem) MakeMountAnchor(ctx context.Context, name string, target int) error {
	if err := validateName(name, "mount <device>"); err != nil {
		return err
	}
	if target < 0 {
		return data.Invalid("mount target %d is negative", target)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.hooks.Allow(OpMakeMountAnchor, name); err != nil {
		return err
	}

	ino, err := fs.createDirectoryUnsafe(ctx, fs.cwd, name, data.EntryMountAnchor, target)
	if err != nil {
		return err
	}

	fs.log.Debug("Planted mount anchor '%s' with inode %d for target %d", name, ino, target)
	return nil
}

func (fs *Filesystem) MakeFile(ctx context.Context, name string) error {
	if err := validateName(name, "touch <filename>"); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.hooks.Allow(OpMakeFile, name); err != nil {
		return err
	}

	ino, err := fs.createFileUnsafe(ctx, fs.cwd, name)
	if err != nil {
		return err
	}

	fs.log.Debug("Created file '%s' with inode %d", name, ino)
	return nil
}

func (fs *Filesystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, data.Usage("read <filename>")
	}

	// Generated content is written through, so reads take the write lock.
	fs.mu.Lock()
	defer fs.mu.Unlock()

	dir, err := fs.loadDirectoryUnsafe(ctx, fs.cwd)
	if err != nil {
		return nil, err
	}

	ino, ok := dir.LookupFile(name)
	if !ok {
		return nil, data.FileNotFound(name)
	}

	file, err := fs.loadFileUnsafe(ctx, ino, name)
	if err != nil {
		return nil, err
	}

	content, handled, err := fs.hooks.Generate(ctx, &tree{fs: fs}, name)
	if err != nil {
		return nil, err
	}
	if handled {
		file.Content = content
		if err := fs.storage.StoreFile(ctx, ino, file); err != nil {
			return nil, err
		}
		fs.log.Debug("Regenerated '%s' (%d bytes)", name, len(content))
	}

	out := make([]byte, len(file.Content))
	copy(out, file.Content)
	return out, nil
}

func (fs *Filesystem) WriteFile(ctx context.Context, command string) error {
	name, payload, ok := strings.Cut(command, " ")
	if !ok || name == "" {
		return data.Usage("write <filename> <message>")
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.hooks.Allow(OpWrite, name); err != nil {
		return err
	}

	dir, err := fs.loadDirectoryUnsafe(ctx, fs.cwd)
	if err != nil {
		return err
	}

	ino, ok := dir.LookupFile(name)
	if !ok {
		return data.FileNotFound(name)
	}

	content, err := fs.hooks.Write(ctx, &tree{fs: fs}, name, payload)
	if err != nil {
		return err
	}

	if err := fs.storeContentUnsafe(ctx, ino, name, content); err != nil {
		return err
	}

	fs.log.Debug("Wrote %d bytes into '%s'", len(content), name)
	return nil
}

func (fs *Filesystem) RemoveFile(ctx context.Context, name string) error {
	if name == "" {
		return data.Usage("rmf <filename>")
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.hooks.Allow(OpRemoveFile, name); err != nil {
		return err
	}

	dir, err := fs.loadDirectoryUnsafe(ctx, fs.cwd)
	if err != nil {
		return err
	}

	ino, ok := dir.LookupFile(name)
	if !ok {
		return data.FileNotFound(name)
	}

	if err := fs.storage.DeleteFile(ctx, ino); err != nil && !errors.Is(err, data.ErrNotExist) {
		return err
	}

	delete(dir.Files, ino)
	if err := fs.storage.StoreDirectory(ctx, fs.cwd, dir); err != nil {
		return err
	}

	fs.sb.FileCount--
	fs.log.Debug("Removed file '%s' with inode %d", name, ino)
	return nil
}

// RemoveDirectory deletes the named directory together with its whole subtree.
func (fs *Filesystem) RemoveDirectory(ctx context.Context, name string) error {
	if name == "" {
		return data.Usage("rmd <dirname>")
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.hooks.Allow(OpRemoveDirectory, name); err != nil {
		return err
	}

	dir, err := fs.loadDirectoryUnsafe(ctx, fs.cwd)
	if err != nil {
		return err
	}

	ino, sub, ok := dir.LookupSubdirectory(name)
	if !ok {
		return data.DirectoryNotFound(name)
	}
	if sub.IsMountAnchor() {
		return data.MountBusy(name)
	}

	dirs, files, err := fs.collectSubtreeUnsafe(ctx, ino, name)
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := fs.storage.DeleteFile(ctx, f); err != nil && !errors.Is(err, data.ErrNotExist) {
			return err
		}
		fs.sb.FileCount--
	}
	for _, d := range dirs {
		if err := fs.storage.DeleteDirectory(ctx, d); err != nil && !errors.Is(err, data.ErrNotExist) {
			return err
		}
		fs.sb.DirCount--
	}

	delete(dir.Subdirectories, ino)
	if err := fs.storage.StoreDirectory(ctx, fs.cwd, dir); err != nil {
		return err
	}

	fs.log.Debug("Removed directory '%s' with %d directories and %d files", name, len(dirs), len(files))
	return nil
}

func (fs *Filesystem) List(ctx context.Context) ([]Entry, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	dir, err := fs.loadDirectoryUnsafe(ctx, fs.cwd)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dir.Subdirectories)+len(dir.Files))
	for _, ino := range dir.SubdirectoryInodes() {
		sub := dir.Subdirectories[ino]
		entries = append(entries, Entry{
			Inode: ino,
			Name:  sub.Name,
			Kind:  sub.Kind,
		})
	}
	for _, ino := range dir.FileInodes() {
		entries = append(entries, Entry{
			Inode: ino,
			Name:  dir.Files[ino],
			Kind:  data.EntryFile,
		})
	}

	return entries, nil
}

func (fs *Filesystem) Dump(ctx context.Context) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.dumpUnsafe(ctx)
}
