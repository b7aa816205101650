package mount

import (
	"context"

	"github.com/mwantia/kvfs/data"
)

const parentDirectory = ".."

func (fs *Filesystem) Path(ctx context.Context) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.pathUnsafe(ctx)
}

// ChangeDirectory moves cwd inside this filesystem or reports a boundary crossing.
// Crossing never changes cwd: the registry switches the active filesystem instead.
func (fs *Filesystem) ChangeDirectory(ctx context.Context, name string) (Transition, error) {
	stay := Transition{Kind: TransitionStay}
	if name == "" {
		return stay, data.Usage("cd <dirname>")
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if name == parentDirectory {
		if fs.cwd == data.RootInode {
			if fs.hasHost {
				return Transition{Kind: TransitionAscend, Target: fs.host}, nil
			}
			return stay, nil
		}

		dir, err := fs.loadDirectoryUnsafe(ctx, fs.cwd)
		if err != nil {
			return stay, err
		}
		if dir.HasParent() {
			fs.cwd = dir.Parent
		}
		return stay, nil
	}

	dir, err := fs.loadDirectoryUnsafe(ctx, fs.cwd)
	if err != nil {
		return stay, err
	}

	ino, sub, ok := dir.LookupSubdirectory(name)
	if !ok {
		return stay, data.DirectoryNotFound(name)
	}

	if sub.IsMountAnchor() {
		return Transition{
			Kind:   TransitionDescend,
			Target: sub.Target,
			Name:   sub.Name,
		}, nil
	}

	fs.cwd = ino
	return stay, nil
}
