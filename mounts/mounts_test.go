package mounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/mount"
	"github.com/mwantia/kvfs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemory struct {
	stats system.MemoryStats
}

func (f *fakeMemory) MemoryStats(ctx context.Context) (system.MemoryStats, error) {
	return f.stats, nil
}

type fakeUptime struct {
	uptime time.Duration
}

func (f *fakeUptime) Uptime() time.Duration {
	return f.uptime
}

type fakeCycles struct {
	n uint64
}

func (f *fakeCycles) Cycles() uint64 {
	f.n += 100
	return f.n
}

type fakeScanner struct {
	report string
	err    error
	calls  int
}

func (f *fakeScanner) Scan(ctx context.Context) (string, error) {
	f.calls++
	return f.report, f.err
}

type fixture struct {
	memory  *fakeMemory
	uptime  *fakeUptime
	scanner *fakeScanner
	palette *system.Palette
}

func newFixture() *fixture {
	return &fixture{
		memory:  &fakeMemory{stats: system.MemoryStats{HeapSize: 102400, HeapStart: 0x4444_4444_0000}},
		uptime:  &fakeUptime{uptime: 5 * time.Second},
		scanner: &fakeScanner{report: "CPU device: 0\nvendorID=GenuineIntel, model=Test, cores=4, mhz=2400\n"},
		palette: system.NewPalette(system.DefaultForeground, system.DefaultBackground),
	}
}

func (f *fixture) collaborators() system.Collaborators {
	return system.Collaborators{
		Memory:  f.memory,
		Uptime:  f.uptime,
		Cycles:  &fakeCycles{},
		Devices: f.scanner,
		Colors:  f.palette,
	}
}

func cd(t *testing.T, fs mount.Operations, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := fs.ChangeDirectory(t.Context(), name)
		require.NoError(t, err)
	}
}

func read(t *testing.T, fs mount.Operations, name string) string {
	t.Helper()
	content, err := fs.ReadFile(t.Context(), name)
	require.NoError(t, err)
	return string(content)
}

func TestProcFS_Layout(t *testing.T) {
	f := newFixture()
	fs, err := NewProcFS(t.Context(), f.collaborators(), mount.WithHost(0))
	require.NoError(t, err)
	defer fs.Close(context.Background())

	dump, err := fs.Dump(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "InodeCount: 8\nCurrent Path: 1\nInode   Dirname/Filename\n"+
		"1       proc\n6       sys\n7       fs\n"+
		"2       meminfo\n3       mounts\n4       uptime\n5       color\n8       inode-state\n", dump)

	assert.Equal(t, "Black Yellow", read(t, fs, "color"))
	assert.Equal(t, int64(5), fs.Superblock().FileCount)
	assert.Equal(t, int64(2), fs.Superblock().DirCount)
}

func TestProcFS_Generated(t *testing.T) {
	f := newFixture()
	fs, err := NewProcFS(t.Context(), f.collaborators(), mount.WithHost(0))
	require.NoError(t, err)
	defer fs.Close(context.Background())

	assert.Equal(t, "Heap Size: 102400 bytes\nHeap Start: 0x444444440000", read(t, fs, "meminfo"))
	assert.Equal(t, "Currently mounted filesystem: proc", read(t, fs, "mounts"))

	first := read(t, fs, "uptime")
	f.uptime.uptime = 9 * time.Second
	second := read(t, fs, "uptime")
	assert.Equal(t, "System running time: 5 seconds.", first)
	assert.Equal(t, "System running time: 9 seconds.", second)

	cd(t, fs, "sys", "fs")
	state := read(t, fs, "inode-state")
	assert.Contains(t, state, "InodeCount: 8\nCurrent Path: 7\nInode   Dirname/Filename\n")
	assert.Contains(t, state, "8       inode-state\n")
}

func TestProcFS_Policy(t *testing.T) {
	f := newFixture()
	fs, err := NewProcFS(t.Context(), f.collaborators(), mount.WithHost(0))
	require.NoError(t, err)
	defer fs.Close(context.Background())

	ctx := t.Context()

	err = fs.MakeFile(ctx, "new")
	assert.ErrorIs(t, err, data.ErrPermission)
	assert.Equal(t, "vfs: cannot add files in filesystem 'proc'", err.Error())

	assert.ErrorIs(t, fs.MakeDirectory(ctx, "new"), data.ErrPermission)
	assert.ErrorIs(t, fs.RemoveFile(ctx, "meminfo"), data.ErrPermission)
	assert.ErrorIs(t, fs.RemoveDirectory(ctx, "sys"), data.ErrPermission)

	err = fs.WriteFile(ctx, "meminfo hello")
	assert.ErrorIs(t, err, data.ErrReadOnly)
	assert.Equal(t, data.KindPolicy, data.KindOf(err))

	// Other filesystems can still be mounted below proc.
	require.NoError(t, fs.MakeMountAnchor(ctx, "sys", 2))

	_, err = fs.SpeedTest(ctx)
	assert.ErrorIs(t, err, data.ErrPermission)
}

func TestProcFS_Color(t *testing.T) {
	f := newFixture()
	fs, err := NewProcFS(t.Context(), f.collaborators(), mount.WithHost(0))
	require.NoError(t, err)
	defer fs.Close(context.Background())

	ctx := t.Context()

	require.NoError(t, fs.WriteFile(ctx, "color White Blue"))
	assert.Equal(t, "White Blue", read(t, fs, "color"))
	assert.True(t, f.palette.Changed())
	fg, bg := f.palette.Colors()
	assert.Equal(t, "White", fg)
	assert.Equal(t, "Blue", bg)

	for _, command := range []string{"color", "color ", "color Red", "color Red  "} {
		err := fs.WriteFile(ctx, command)
		assert.ErrorIs(t, err, data.ErrInvalid, command)
	}

	assert.False(t, f.palette.Changed())
	assert.Equal(t, "White Blue", read(t, fs, "color"))

	require.NoError(t, fs.WriteFile(ctx, "color Red Green Blue"))
	assert.Equal(t, "Red Green Blue", read(t, fs, "color"))
	assert.True(t, f.palette.Changed())
	fg, bg = f.palette.Colors()
	assert.Equal(t, "Red", fg)
	assert.Equal(t, "Green Blue", bg)
}

func TestSysFS(t *testing.T) {
	f := newFixture()
	fs, err := NewSysFS(t.Context(), f.collaborators(), mount.WithHost(0))
	require.NoError(t, err)
	defer fs.Close(context.Background())

	ctx := t.Context()

	assert.Equal(t, f.scanner.report, read(t, fs, "pci"))
	assert.Equal(t, 1, f.scanner.calls)

	f.scanner.report = "Net device: 1\nname=lo, hw=, mtu=65536\n"
	assert.Equal(t, f.scanner.report, read(t, fs, "pci"))
	assert.Equal(t, 2, f.scanner.calls)

	err = fs.RemoveFile(ctx, "pci")
	assert.ErrorIs(t, err, data.ErrPermission)
	assert.Equal(t, "vfs: cannot remove protected entry 'pci'", err.Error())

	// Everything else behaves like the root filesystem.
	require.NoError(t, fs.MakeDirectory(ctx, "bus"))
	require.NoError(t, fs.MakeFile(ctx, "notes"))
	require.NoError(t, fs.WriteFile(ctx, "notes hello"))
	assert.Equal(t, "hello", read(t, fs, "notes"))
	require.NoError(t, fs.RemoveFile(ctx, "notes"))
	require.NoError(t, fs.RemoveDirectory(ctx, "bus"))

	f.scanner.err = errors.New("bus unavailable")
	_, err = fs.ReadFile(ctx, "pci")
	assert.Error(t, err)
}

func TestRootFS(t *testing.T) {
	fs, err := NewRootFS(t.Context())
	require.NoError(t, err)
	defer fs.Close(context.Background())

	ctx := t.Context()
	require.NoError(t, fs.MakeDirectory(ctx, "docs"))
	require.NoError(t, fs.MakeFile(ctx, "docs"))
	require.NoError(t, fs.WriteFile(ctx, "docs free form text"))
	assert.Equal(t, "free form text", read(t, fs, "docs"))
	require.NoError(t, fs.RemoveFile(ctx, "docs"))
	require.NoError(t, fs.RemoveDirectory(ctx, "docs"))
}

func TestReadOnlyHooks(t *testing.T) {
	ro := NewReadOnly("archive", nil, "journal")

	assert.NoError(t, ro.Allow(mount.OpMakeMountAnchor, "proc"))
	assert.NoError(t, ro.Allow(mount.OpWrite, "journal"))
	assert.ErrorIs(t, ro.Allow(mount.OpWrite, "other"), data.ErrReadOnly)
	assert.ErrorIs(t, ro.Allow(mount.OpMakeDirectory, "x"), data.ErrPermission)
	assert.ErrorIs(t, ro.Allow(mount.OpRemoveDirectory, "x"), data.ErrPermission)
}

func TestStorageFactory(t *testing.T) {
	for _, driver := range []string{"", "memory", "sqlite", "SQLite", " sqlite "} {
		factory, err := StorageFactory(driver)
		require.NoError(t, err, driver)

		storage, err := factory()
		require.NoError(t, err)
		require.NoError(t, storage.Open(t.Context()))
		assert.NoError(t, storage.Close(t.Context()))
	}

	for _, driver := range []string{"consul", "sqlite:file:kvfs.db", "sqlite::memory:"} {
		_, err := StorageFactory(driver)
		assert.ErrorIs(t, err, data.ErrInvalid, driver)
	}
}

func TestBackends_OnSQLite(t *testing.T) {
	f := newFixture()
	factory, err := StorageFactory("sqlite")
	require.NoError(t, err)

	fs, err := NewProcFS(t.Context(), f.collaborators(), mount.WithHost(0), mount.WithStorage(factory))
	require.NoError(t, err)
	defer fs.Close(context.Background())

	assert.Equal(t, "sqlite", fs.StorageName())
	assert.Equal(t, "Currently mounted filesystem: proc", read(t, fs, "mounts"))
	require.NoError(t, fs.WriteFile(t.Context(), "color Green Black"))
	assert.Equal(t, "Green Black", read(t, fs, "color"))
}
