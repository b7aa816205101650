package mounts

import (
	"context"

	"github.com/mwantia/kvfs/mount"
)

// RootHooks is the unrestricted general purpose back-end.
type RootHooks struct {
	mount.BaseHooks
}

func NewRootHooks() *RootHooks {
	return &RootHooks{}
}

// NewRootFS creates the top-level filesystem. It must not be given a host.
func NewRootFS(ctx context.Context, opts ...mount.Option) (*mount.Filesystem, error) {
	return mount.New(ctx, RootDevice, NewRootHooks(), opts...)
}
