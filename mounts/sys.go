package mounts

import (
	"context"

	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/mount"
	"github.com/mwantia/kvfs/system"
)

const sysPci = "pci"

// SysHooks behaves like the root back-end except for the pci file,
// which is filled by a device scan on every read and cannot be removed.
type SysHooks struct {
	mount.BaseHooks
	system system.Collaborators
}

func NewSysHooks(collab system.Collaborators) *SysHooks {
	return &SysHooks{
		system: collab.WithDefaults(),
	}
}

func NewSysFS(ctx context.Context, collab system.Collaborators, opts ...mount.Option) (*mount.Filesystem, error) {
	return mount.New(ctx, SysDevice, NewSysHooks(collab), opts...)
}

func (sh *SysHooks) Provision(ctx context.Context, tree mount.Tree) error {
	_, err := tree.ProvisionFile(ctx, data.RootInode, sysPci, nil)
	return err
}

func (sh *SysHooks) Generate(ctx context.Context, tree mount.Tree, name string) ([]byte, bool, error) {
	if name != sysPci {
		return nil, false, nil
	}

	start := sh.system.Cycles.Cycles()
	report, err := sh.system.Devices.Scan(ctx)
	if err != nil {
		return nil, false, err
	}

	tree.Logger().Debug("Device scan performed in %d cycles", sh.system.Cycles.Cycles()-start)
	return []byte(report), true, nil
}

func (sh *SysHooks) Allow(op mount.Op, name string) error {
	if op == mount.OpRemoveFile && name == sysPci {
		return data.ProtectedEntry(name)
	}
	return nil
}
