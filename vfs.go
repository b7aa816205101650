package vfs

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/kvfs/cmd"
	"github.com/mwantia/kvfs/cmd/builtin"
	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/log"
	"github.com/mwantia/kvfs/metrics"
	"github.com/mwantia/kvfs/mount"
	"github.com/mwantia/kvfs/system"
)

// VirtualFileSystem is the registry of mounted filesystems.
// Index 0 is the root filesystem; the active index receives every command.
type VirtualFileSystem struct {
	mu        sync.Mutex
	instances []mount.Operations
	active    int

	log       *log.Logger
	ownLogger bool
	metrics   *metrics.Metrics
	commands  *CommandManager
	options   *VirtualFileSystemOptions
}

// NewVfs creates a registry around root, which must not have a host.
func NewVfs(root mount.Operations, opts ...VirtualFileSystemOption) (*VirtualFileSystem, error) {
	options, err := newVirtualFileSystemOptions(opts...)
	if err != nil {
		return nil, err
	}

	return newVfs(root, options)
}

func newVfs(root mount.Operations, options *VirtualFileSystemOptions) (*VirtualFileSystem, error) {
	if root == nil {
		return nil, data.Invalid("root filesystem is nil")
	}
	if host, ok := root.Host(); ok {
		return nil, data.InvalidHost(root.DeviceName(), host, -1)
	}

	v := &VirtualFileSystem{
		instances: []mount.Operations{root},
		log:       options.Logger,
		metrics:   options.Metrics,
		commands:  NewCommandManager(),
		options:   options,
	}
	if v.log == nil {
		v.log = log.NewLogger("vfs", options.LogLevel, options.LogFile, options.NoTerminalLog)
		v.ownLogger = true
	}

	for _, c := range append(builtin.Commands(), options.Commands...) {
		if err := v.commands.Register(c); err != nil {
			return nil, err
		}
	}

	v.metrics.SetMounts(len(v.instances))
	v.metrics.SetEntries(root.Superblock())
	return v, nil
}

// Mount appends fsys to the registry and plants its anchor in the active filesystem.
// fsys must have been created with the active index as its host.
func (v *VirtualFileSystem) Mount(ctx context.Context, fsys mount.Operations) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.mountUnsafe(ctx, fsys)
}

// MountBackend creates a filesystem hosted by the active one and mounts it.
func (v *VirtualFileSystem) MountBackend(ctx context.Context, device string, hooks mount.Hooks, opts ...mount.Option) (*mount.Filesystem, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	base, err := v.options.mountOptions(v.log)
	if err != nil {
		return nil, err
	}
	base = append(base, mount.WithHost(v.active))

	fs, err := mount.New(ctx, device, hooks, append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	if err := v.mountUnsafe(ctx, fs); err != nil {
		if cerr := fs.Close(ctx); cerr != nil {
			v.log.Warn("Failed to close unmounted '%s': %v", device, cerr)
		}
		return nil, err
	}
	return fs, nil
}

// ActivateByDeviceName makes the named filesystem active. Unknown names change nothing.
func (v *VirtualFileSystem) ActivateByDeviceName(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, fsys := range v.instances {
		if fsys.DeviceName() == name {
			v.active = i
			return true
		}
	}
	return false
}

// Active returns the filesystem receiving commands and its registry index.
func (v *VirtualFileSystem) Active() (mount.Operations, int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.instances[v.active], v.active
}

func (v *VirtualFileSystem) FullPath(ctx context.Context) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.fullPathUnsafe(ctx)
}

func (v *VirtualFileSystem) Mounts() []cmd.MountInfo {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.mountsUnsafe()
}

// Commands returns the manager holding the builtin and registered commands.
func (v *VirtualFileSystem) Commands() *CommandManager {
	return v.commands
}

// Colors returns the color sink the proc filesystem writes to.
func (v *VirtualFileSystem) Colors() system.ColorSink {
	return v.options.Collaborators.Colors
}

// Execute runs one command line against the active filesystem.
// Failures are printed to w and returned with exit code 1.
func (v *VirtualFileSystem) Execute(ctx context.Context, w io.Writer, line string) (int, error) {
	verb, rest := cmd.SplitLine(line)
	if verb == "" {
		return 0, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	id := uuid.NewString()
	start := time.Now()
	v.log.Debug("[%s] Executing '%s' on '%s'", id, verb, v.instances[v.active].DeviceName())

	label := verb
	if _, err := v.commands.Get(verb); err != nil {
		label = "unknown"
	}

	code, err := v.executeUnsafe(ctx, w, verb, rest)
	v.metrics.ObserveCommand(label, err, time.Since(start))

	if err != nil {
		fmt.Fprintln(w, err.Error())
		v.log.Warn("[%s] Command '%s' failed: %v", id, verb, err)
		return 1, err
	}

	v.metrics.SetEntries(v.instances[v.active].Superblock())
	return code, nil
}

// Shutdown closes every filesystem, newest first, and joins their errors.
func (v *VirtualFileSystem) Shutdown(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	errs := &data.Errors{}
	for i := len(v.instances) - 1; i >= 0; i-- {
		if err := v.instances[i].Close(ctx); err != nil {
			errs.Add(fmt.Errorf("failed to close '%s': %w", v.instances[i].DeviceName(), err))
		}
	}

	v.log.Info("Shut down %d filesystems", len(v.instances))
	if v.ownLogger {
		errs.Add(v.log.Close())
	}
	return errs.Errors()
}
