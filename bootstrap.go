package vfs

import (
	"context"
	"errors"

	"github.com/mwantia/kvfs/log"
	"github.com/mwantia/kvfs/mounts"
)

// Boot creates the root filesystem and mounts proc and sys beneath it.
func Boot(ctx context.Context, opts ...VirtualFileSystemOption) (*VirtualFileSystem, error) {
	options, err := newVirtualFileSystemOptions(opts...)
	if err != nil {
		return nil, err
	}

	logger := options.Logger
	owned := logger == nil
	if owned {
		logger = log.NewLogger("vfs", options.LogLevel, options.LogFile, options.NoTerminalLog)
		options.Logger = logger
	}

	rootOpts, err := options.mountOptions(logger)
	if err != nil {
		return nil, err
	}

	root, err := mounts.NewRootFS(ctx, rootOpts...)
	if err != nil {
		return nil, err
	}

	v, err := newVfs(root, options)
	if err != nil {
		return nil, errors.Join(err, root.Close(ctx))
	}
	v.ownLogger = owned

	collab := options.Collaborators
	if _, err := v.MountBackend(ctx, mounts.ProcDevice, mounts.NewProcHooks(collab)); err != nil {
		return nil, errors.Join(err, v.Shutdown(ctx))
	}
	if _, err := v.MountBackend(ctx, mounts.SysDevice, mounts.NewSysHooks(collab)); err != nil {
		return nil, errors.Join(err, v.Shutdown(ctx))
	}

	v.log.Info("Booted with %d filesystems", len(v.instances))
	return v, nil
}
