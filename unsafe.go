package vfs

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/kvfs/cmd"
	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/mount"
)

// The helpers below expect v.mu to be held.

func (v *VirtualFileSystem) mountUnsafe(ctx context.Context, fsys mount.Operations) error {
	if fsys == nil {
		return data.Invalid("filesystem is nil")
	}

	device := fsys.DeviceName()
	host, ok := fsys.Host()
	if !ok || host != v.active {
		if !ok {
			host = -1
		}
		return data.InvalidHost(device, host, v.active)
	}

	for _, existing := range v.instances {
		if existing.DeviceName() == device {
			return data.AlreadyMounted(device)
		}
	}

	index := len(v.instances)
	if err := v.instances[v.active].MakeMountAnchor(ctx, device, index); err != nil {
		return fmt.Errorf("failed to plant anchor for '%s': %w", device, err)
	}

	v.instances = append(v.instances, fsys)
	v.metrics.SetMounts(len(v.instances))
	v.metrics.SetEntries(fsys.Superblock())
	v.metrics.SetEntries(v.instances[v.active].Superblock())

	v.log.Info("Mounted '%s' at index %d inside '%s' using '%s' storage",
		device, index, v.instances[v.active].DeviceName(), fsys.StorageName())
	return nil
}

func (v *VirtualFileSystem) changeDirectoryUnsafe(ctx context.Context, name string) (mount.Transition, error) {
	current := v.instances[v.active]

	tr, err := current.ChangeDirectory(ctx, name)
	if err != nil {
		return tr, err
	}

	switch tr.Kind {
	case mount.TransitionAscend, mount.TransitionDescend:
		if tr.Target < 0 || tr.Target >= len(v.instances) {
			return tr, fmt.Errorf("registry index %d of '%s' not found: %w", tr.Target, name, data.ErrNotMounted)
		}

		v.log.Debug("Switching from '%s' to '%s' (%s)",
			current.DeviceName(), v.instances[tr.Target].DeviceName(), tr.Kind)
		v.active = tr.Target
	}
	return tr, nil
}

// fullPathUnsafe prefixes the active path with the path of its host.
func (v *VirtualFileSystem) fullPathUnsafe(ctx context.Context) (string, error) {
	current := v.instances[v.active]

	path, err := current.Path(ctx)
	if err != nil {
		return "", err
	}

	host, ok := current.Host()
	if !ok || host < 0 || host >= len(v.instances) {
		return path, nil
	}

	hostPath, err := v.instances[host].Path(ctx)
	if err != nil {
		return "", err
	}
	return hostPath + path, nil
}

func (v *VirtualFileSystem) mountsUnsafe() []cmd.MountInfo {
	infos := make([]cmd.MountInfo, 0, len(v.instances))
	for i, fsys := range v.instances {
		host, ok := fsys.Host()
		infos = append(infos, cmd.MountInfo{
			Index:   i,
			Device:  fsys.DeviceName(),
			Host:    host,
			HasHost: ok,
			Storage: fsys.StorageName(),
			Active:  i == v.active,
		})
	}
	return infos
}

func (v *VirtualFileSystem) executeUnsafe(ctx context.Context, w io.Writer, verb, rest string) (int, error) {
	c, err := v.commands.Get(verb)
	if err != nil {
		return 1, err
	}

	args, err := cmd.NewParser(c.GetFlags()).ParseLine(rest)
	if err != nil {
		return 1, err
	}

	code, err := c.Execute(ctx, &session{vfs: v}, args, w)
	if err == nil && code != 0 {
		v.log.Debug("Command '%s' exited with code %d", verb, code)
	}
	return code, err
}

// session is the lock-held registry view handed to commands.
type session struct {
	vfs *VirtualFileSystem
}

var _ cmd.API = (*session)(nil)

func (s *session) Active() mount.Operations {
	return s.vfs.instances[s.vfs.active]
}

func (s *session) ChangeDirectory(ctx context.Context, name string) (mount.Transition, error) {
	return s.vfs.changeDirectoryUnsafe(ctx, name)
}

func (s *session) FullPath(ctx context.Context) (string, error) {
	return s.vfs.fullPathUnsafe(ctx)
}

func (s *session) Mounts() []cmd.MountInfo {
	return s.vfs.mountsUnsafe()
}

func (s *session) Commands() []cmd.Command {
	return s.vfs.commands.List()
}

func (s *session) Cycles() uint64 {
	return s.vfs.options.Collaborators.Cycles.Cycles()
}
