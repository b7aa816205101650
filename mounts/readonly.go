package mounts

import (
	"context"
	"slices"

	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/mount"
)

// ReadOnlyHooks wraps any Hooks implementation to make it read-only.
// Mount anchors and writes to the explicitly writable names are still permitted.
type ReadOnlyHooks struct {
	device   string
	inner    mount.Hooks
	writable []string
}

// NewReadOnly creates a new read-only wrapper around the given hooks.
func NewReadOnly(device string, inner mount.Hooks, writable ...string) *ReadOnlyHooks {
	if inner == nil {
		inner = mount.BaseHooks{}
	}
	return &ReadOnlyHooks{
		device:   device,
		inner:    inner,
		writable: writable,
	}
}

func (ro *ReadOnlyHooks) Provision(ctx context.Context, tree mount.Tree) error {
	return ro.inner.Provision(ctx, tree)
}

func (ro *ReadOnlyHooks) Generate(ctx context.Context, tree mount.Tree, name string) ([]byte, bool, error) {
	return ro.inner.Generate(ctx, tree, name)
}

func (ro *ReadOnlyHooks) Allow(op mount.Op, name string) error {
	switch op {
	case mount.OpMakeMountAnchor:
	case mount.OpMakeFile:
		return data.Refused(ro.device, "add files")
	case mount.OpMakeDirectory:
		return data.Refused(ro.device, "add directories")
	case mount.OpRemoveFile:
		return data.Refused(ro.device, "remove files")
	case mount.OpRemoveDirectory:
		return data.Refused(ro.device, "remove directories")
	case mount.OpWrite:
		if !slices.Contains(ro.writable, name) {
			return data.ReadOnlyFile(name)
		}
	}
	return ro.inner.Allow(op, name)
}

func (ro *ReadOnlyHooks) Write(ctx context.Context, tree mount.Tree, name, payload string) ([]byte, error) {
	return ro.inner.Write(ctx, tree, name, payload)
}
