package mounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/mount"
	"github.com/mwantia/kvfs/system"
)

const (
	procMeminfo    = "meminfo"
	procMounts     = "mounts"
	procUptime     = "uptime"
	procColor      = "color"
	procInodeState = "inode-state"
)

// ProcHooks synthesizes kernel state on read. Only the color file accepts writes.
type ProcHooks struct {
	mount.BaseHooks
	system system.Collaborators
}

// NewProcHooks returns the proc policy wrapped read-only.
func NewProcHooks(collab system.Collaborators) mount.Hooks {
	return NewReadOnly(ProcDevice, &ProcHooks{
		system: collab.WithDefaults(),
	}, procColor)
}

func NewProcFS(ctx context.Context, collab system.Collaborators, opts ...mount.Option) (*mount.Filesystem, error) {
	return mount.New(ctx, ProcDevice, NewProcHooks(collab), opts...)
}

func (ph *ProcHooks) Provision(ctx context.Context, tree mount.Tree) error {
	for _, name := range []string{procMeminfo, procMounts, procUptime} {
		if _, err := tree.ProvisionFile(ctx, data.RootInode, name, nil); err != nil {
			return err
		}
	}

	fg, bg := ph.system.Colors.Colors()
	if _, err := tree.ProvisionFile(ctx, data.RootInode, procColor, []byte(fg+" "+bg)); err != nil {
		return err
	}

	sys, err := tree.ProvisionDirectory(ctx, data.RootInode, "sys")
	if err != nil {
		return err
	}
	fs, err := tree.ProvisionDirectory(ctx, sys, "fs")
	if err != nil {
		return err
	}
	_, err = tree.ProvisionFile(ctx, fs, procInodeState, nil)
	return err
}

func (ph *ProcHooks) Generate(ctx context.Context, tree mount.Tree, name string) ([]byte, bool, error) {
	switch name {
	case procMeminfo:
		stats, err := ph.system.Memory.MemoryStats(ctx)
		if err != nil {
			return nil, false, err
		}
		return fmt.Appendf(nil, "Heap Size: %d bytes\nHeap Start: 0x%X", stats.HeapSize, stats.HeapStart), true, nil

	case procUptime:
		seconds := int64(ph.system.Uptime.Uptime().Seconds())
		return fmt.Appendf(nil, "System running time: %d seconds.", seconds), true, nil

	case procMounts:
		return fmt.Appendf(nil, "Currently mounted filesystem: %s", tree.Device()), true, nil

	case procInodeState:
		dump, err := tree.Dump(ctx)
		if err != nil {
			return nil, false, err
		}
		return []byte(dump), true, nil
	}

	return nil, false, nil
}

// Write handles the color file: "<foreground> <background>" updates the palette.
func (ph *ProcHooks) Write(ctx context.Context, tree mount.Tree, name, payload string) ([]byte, error) {
	if name != procColor {
		return nil, data.ReadOnlyFile(name)
	}

	// The background takes everything after the foreground.
	fg, bg, _ := strings.Cut(strings.TrimSpace(payload), " ")
	bg = strings.TrimSpace(bg)
	if fg == "" || bg == "" {
		return nil, data.Usage("write color <foreground> <background>")
	}

	for _, c := range []string{fg, bg} {
		if !system.IsVGAColor(c) {
			tree.Logger().Warn("Color '%s' is not a known console color", c)
		}
	}

	ph.system.Colors.SetColors(fg, bg)
	return []byte(fg + " " + bg), nil
}
