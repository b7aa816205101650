package mount

import (
	"context"
	"fmt"
	"sync"

	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/log"
	"github.com/mwantia/kvfs/mount/backend"
	"github.com/mwantia/kvfs/system"
)

// Filesystem is the generic tree engine behind every mounted back-end.
// The back-end specific behaviour is supplied through Hooks.
type Filesystem struct {
	mu sync.RWMutex

	sb            data.Superblock
	nextInode     data.Inode
	nextMountSlot data.Inode
	cwd           data.Inode

	host    int
	hasHost bool

	storage     backend.EntryStorage
	maxFileSize int64
	hooks       Hooks
	log         *log.Logger
	cycles      system.CycleCounter

	speedTestFiles     int
	speedTestDoublings int
}

var _ Operations = (*Filesystem)(nil)

// New opens a fresh entry storage, creates the root directory named after device
// and lets hooks provision the initial entries.
func New(ctx context.Context, device string, hooks Hooks, opts ...Option) (*Filesystem, error) {
	if device == "" {
		return nil, data.Invalid("device name must not be empty")
	}
	if hooks == nil {
		hooks = BaseHooks{}
	}

	options := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	storage, err := options.Storage()
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	caps := storage.GetCapabilities()
	if missing := caps.Missing(backend.RequiredCapabilities()...); len(missing) > 0 {
		return nil, fmt.Errorf("storage '%s' lacks capabilities %v: %w", storage.Name(), missing, data.ErrInvalid)
	}

	if err := storage.Open(ctx); err != nil {
		return nil, fmt.Errorf("failed to open storage '%s': %w", storage.Name(), err)
	}

	fs := &Filesystem{
		sb:                 data.NewSuperblock(device),
		host:               options.Host,
		hasHost:            options.HasHost,
		storage:            storage,
		maxFileSize:        caps.MaxFileSize,
		hooks:              hooks,
		log:                options.Logger.Named(device),
		cycles:             options.Cycles,
		speedTestFiles:     options.SpeedTestFiles,
		speedTestDoublings: options.SpeedTestDoublings,
	}

	if err := fs.init(ctx); err != nil {
		if cerr := storage.Close(ctx); cerr != nil {
			fs.log.Warn("Failed to close storage: %v", cerr)
		}
		return nil, err
	}

	fs.log.Debug("Initialized filesystem '%s' on storage '%s' with capabilities %v", device, storage.Name(), caps.Capabilities)
	return fs, nil
}

func (fs *Filesystem) init(ctx context.Context) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	root, err := fs.createDirectoryUnsafe(ctx, data.NoInode, fs.sb.Device, data.EntryDirectory, 0)
	if err != nil {
		return fmt.Errorf("failed to create root directory: %w", err)
	}
	if root != data.RootInode {
		return fmt.Errorf("root directory got inode %d: %w", root, data.ErrInconsistent)
	}
	fs.cwd = data.RootInode

	if err := fs.hooks.Provision(ctx, &tree{fs: fs}); err != nil {
		return fmt.Errorf("failed to provision '%s': %w", fs.sb.Device, err)
	}
	return nil
}

func (fs *Filesystem) Superblock() data.Superblock {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.sb
}

func (fs *Filesystem) DeviceName() string {
	return fs.sb.Device
}

func (fs *Filesystem) CurrentInode() data.Inode {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.cwd
}

func (fs *Filesystem) Host() (int, bool) {
	return fs.host, fs.hasHost
}

func (fs *Filesystem) StorageName() string {
	return fs.storage.Name()
}

func (fs *Filesystem) Close(ctx context.Context) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.log.Debug("Closing storage '%s'", fs.storage.Name())
	return fs.storage.Close(ctx)
}

// tree exposes the lock-free helpers to hooks, which always run while fs.mu is held.
type tree struct {
	fs *Filesystem
}

func (t *tree) Device() string {
	return t.fs.sb.Device
}

func (t *tree) Current() data.Inode {
	return t.fs.cwd
}

func (t *tree) Logger() *log.Logger {
	return t.fs.log
}

func (t *tree) Dump(ctx context.Context) (string, error) {
	return t.fs.dumpUnsafe(ctx)
}

func (t *tree) ProvisionDirectory(ctx context.Context, parent data.Inode, name string) (data.Inode, error) {
	return t.fs.createDirectoryUnsafe(ctx, parent, name, data.EntryDirectory, 0)
}

func (t *tree) ProvisionFile(ctx context.Context, parent data.Inode, name string, content []byte) (data.Inode, error) {
	ino, err := t.fs.createFileUnsafe(ctx, parent, name)
	if err != nil {
		return data.NoInode, err
	}
	if len(content) > 0 {
		if err := t.fs.storeContentUnsafe(ctx, ino, name, content); err != nil {
			return data.NoInode, err
		}
	}
	return ino, nil
}
