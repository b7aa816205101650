package mount_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/mount"
	"github.com/mwantia/kvfs/mount/backend"
	"github.com/mwantia/kvfs/mount/backend/memory"
	"github.com/mwantia/kvfs/mount/backend/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storages = map[string]backend.Factory{
	"memory": memory.NewFactory(),
	"sqlite": sqlite.NewFactory(),
}

func newFilesystem(t *testing.T, factory backend.Factory, hooks mount.Hooks, opts ...mount.Option) *mount.Filesystem {
	t.Helper()

	opts = append([]mount.Option{mount.WithStorage(factory)}, opts...)
	fs, err := mount.New(t.Context(), "SVFS", hooks, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = fs.Close(context.Background())
	})
	return fs
}

func names(entries []mount.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.String())
	}
	return out
}

func TestFilesystem(t *testing.T) {
	for name, factory := range storages {
		t.Run(name, func(t *testing.T) {
			t.Run("RootInitialized", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)

				assert.Equal(t, data.RootInode, fs.CurrentInode())
				assert.Equal(t, int64(0), fs.Superblock().DirCount)
				assert.Equal(t, int64(0), fs.Superblock().FileCount)
				assert.Equal(t, "SVFS", fs.DeviceName())
				assert.Equal(t, name, fs.StorageName())

				path, err := fs.Path(t.Context())
				require.NoError(t, err)
				assert.Equal(t, "/", path)

				_, hasHost := fs.Host()
				assert.False(t, hasHost)
			})

			t.Run("DuplicateNamesRejected", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)
				ctx := t.Context()

				require.NoError(t, fs.MakeDirectory(ctx, "a"))
				before, err := fs.Dump(ctx)
				require.NoError(t, err)

				err = fs.MakeDirectory(ctx, "a")
				assert.ErrorIs(t, err, data.ErrExist)
				assert.Equal(t, data.KindValidation, data.KindOf(err))

				after, err := fs.Dump(ctx)
				require.NoError(t, err)
				assert.Equal(t, before, after)
				assert.Equal(t, int64(1), fs.Superblock().DirCount)

				// A file may share its name with a directory.
				require.NoError(t, fs.MakeFile(ctx, "a"))
				assert.ErrorIs(t, fs.MakeFile(ctx, "a"), data.ErrExist)
				assert.Equal(t, int64(1), fs.Superblock().FileCount)

				entries, err := fs.List(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"d - a", "f - a"}, names(entries))
			})

			t.Run("InodeSequences", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)
				ctx := t.Context()

				require.NoError(t, fs.MakeDirectory(ctx, "a"))
				require.NoError(t, fs.MakeMountAnchor(ctx, "proc", 1))
				require.NoError(t, fs.MakeFile(ctx, "b"))
				require.NoError(t, fs.MakeMountAnchor(ctx, "sys", 2))
				require.NoError(t, fs.MakeDirectory(ctx, "c"))

				entries, err := fs.List(ctx)
				require.NoError(t, err)

				inodes := map[string]data.Inode{}
				kinds := map[string]data.EntryKind{}
				for _, e := range entries {
					inodes[e.Name] = e.Inode
					kinds[e.Name] = e.Kind
				}

				assert.Equal(t, data.Inode(2), inodes["a"])
				assert.Equal(t, data.Inode(3), inodes["b"])
				assert.Equal(t, data.Inode(4), inodes["c"])
				assert.Equal(t, data.Inode(-1), inodes["proc"])
				assert.Equal(t, data.Inode(-2), inodes["sys"])
				assert.Equal(t, data.EntryMountAnchor, kinds["proc"])
				assert.Equal(t, data.EntryDirectory, kinds["a"])

				// Anchors count as directories.
				assert.Equal(t, int64(4), fs.Superblock().DirCount)
			})

			t.Run("ListOrder", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)
				ctx := t.Context()

				require.NoError(t, fs.MakeFile(ctx, "zeta"))
				require.NoError(t, fs.MakeDirectory(ctx, "beta"))
				require.NoError(t, fs.MakeFile(ctx, "alpha"))
				require.NoError(t, fs.MakeDirectory(ctx, "gamma"))

				entries, err := fs.List(ctx)
				require.NoError(t, err)
				assert.Equal(t, []string{"d - beta", "d - gamma", "f - zeta", "f - alpha"}, names(entries))
			})

			t.Run("Path", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)
				ctx := t.Context()

				require.NoError(t, fs.MakeDirectory(ctx, "x"))
				_, err := fs.ChangeDirectory(ctx, "x")
				require.NoError(t, err)
				require.NoError(t, fs.MakeDirectory(ctx, "y"))
				_, err = fs.ChangeDirectory(ctx, "y")
				require.NoError(t, err)

				path, err := fs.Path(ctx)
				require.NoError(t, err)
				assert.Equal(t, "/x/y/", path)

				_, err = fs.ChangeDirectory(ctx, "..")
				require.NoError(t, err)
				path, err = fs.Path(ctx)
				require.NoError(t, err)
				assert.Equal(t, "/x/", path)
			})

			t.Run("HostedPath", func(t *testing.T) {
				fs, err := mount.New(t.Context(), "proc", nil, mount.WithStorage(factory), mount.WithHost(0))
				require.NoError(t, err)
				defer fs.Close(context.Background())

				ctx := t.Context()
				path, err := fs.Path(ctx)
				require.NoError(t, err)
				assert.Equal(t, "proc/", path)

				require.NoError(t, fs.MakeDirectory(ctx, "sys"))
				_, err = fs.ChangeDirectory(ctx, "sys")
				require.NoError(t, err)
				path, err = fs.Path(ctx)
				require.NoError(t, err)
				assert.Equal(t, "proc/sys/", path)
			})

			t.Run("ChangeDirectory", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)
				ctx := t.Context()

				tr, err := fs.ChangeDirectory(ctx, "..")
				require.NoError(t, err)
				assert.Equal(t, mount.TransitionStay, tr.Kind)
				assert.Equal(t, data.RootInode, fs.CurrentInode())

				_, err = fs.ChangeDirectory(ctx, "missing")
				assert.ErrorIs(t, err, data.ErrNotExist)
				assert.Equal(t, data.KindLookup, data.KindOf(err))

				_, err = fs.ChangeDirectory(ctx, "")
				assert.ErrorIs(t, err, data.ErrInvalid)

				require.NoError(t, fs.MakeFile(ctx, "plain"))
				_, err = fs.ChangeDirectory(ctx, "plain")
				assert.ErrorIs(t, err, data.ErrNotExist)

				require.NoError(t, fs.MakeMountAnchor(ctx, "proc", 1))
				tr, err = fs.ChangeDirectory(ctx, "proc")
				require.NoError(t, err)
				assert.Equal(t, mount.Transition{Kind: mount.TransitionDescend, Target: 1, Name: "proc"}, tr)
				assert.Equal(t, data.RootInode, fs.CurrentInode())
			})

			t.Run("AscendFromHostedRoot", func(t *testing.T) {
				fs, err := mount.New(t.Context(), "proc", nil, mount.WithStorage(factory), mount.WithHost(3))
				require.NoError(t, err)
				defer fs.Close(context.Background())

				tr, err := fs.ChangeDirectory(t.Context(), "..")
				require.NoError(t, err)
				assert.Equal(t, mount.TransitionAscend, tr.Kind)
				assert.Equal(t, 3, tr.Target)
				assert.Equal(t, data.RootInode, fs.CurrentInode())
			})

			t.Run("ReadWrite", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)
				ctx := t.Context()

				require.NoError(t, fs.MakeFile(ctx, "note"))

				content, err := fs.ReadFile(ctx, "note")
				require.NoError(t, err)
				assert.Empty(t, content)

				require.NoError(t, fs.WriteFile(ctx, "note hello world"))
				content, err = fs.ReadFile(ctx, "note")
				require.NoError(t, err)
				assert.Equal(t, "hello world", string(content))

				require.NoError(t, fs.WriteFile(ctx, "note again"))
				content, err = fs.ReadFile(ctx, "note")
				require.NoError(t, err)
				assert.Equal(t, "again", string(content))

				err = fs.WriteFile(ctx, "note")
				assert.ErrorIs(t, err, data.ErrInvalid)
				assert.Contains(t, err.Error(), "write <filename> <message>")

				assert.ErrorIs(t, fs.WriteFile(ctx, "missing text"), data.ErrNotExist)
				_, err = fs.ReadFile(ctx, "missing")
				assert.ErrorIs(t, err, data.ErrNotExist)
			})

			t.Run("RemoveFile", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)
				ctx := t.Context()

				require.NoError(t, fs.MakeFile(ctx, "note"))
				require.NoError(t, fs.WriteFile(ctx, "note hello"))
				require.NoError(t, fs.RemoveFile(ctx, "note"))

				entries, err := fs.List(ctx)
				require.NoError(t, err)
				assert.Empty(t, entries)

				_, err = fs.ReadFile(ctx, "note")
				assert.ErrorIs(t, err, data.ErrNotExist)
				assert.ErrorIs(t, fs.WriteFile(ctx, "note again"), data.ErrNotExist)
				assert.ErrorIs(t, fs.RemoveFile(ctx, "note"), data.ErrNotExist)
				assert.Equal(t, int64(0), fs.Superblock().FileCount)
			})

			t.Run("RemoveDirectoryCascades", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)
				ctx := t.Context()

				require.NoError(t, fs.MakeDirectory(ctx, "a"))
				_, err := fs.ChangeDirectory(ctx, "a")
				require.NoError(t, err)
				require.NoError(t, fs.MakeDirectory(ctx, "b"))
				require.NoError(t, fs.MakeFile(ctx, "inner"))
				_, err = fs.ChangeDirectory(ctx, "b")
				require.NoError(t, err)
				require.NoError(t, fs.MakeFile(ctx, "deep"))
				_, err = fs.ChangeDirectory(ctx, "..")
				require.NoError(t, err)
				_, err = fs.ChangeDirectory(ctx, "..")
				require.NoError(t, err)

				require.NoError(t, fs.RemoveDirectory(ctx, "a"))

				dump, err := fs.Dump(ctx)
				require.NoError(t, err)
				for _, gone := range []string{" a\n", " b\n", "inner", "deep"} {
					assert.NotContains(t, dump, gone)
				}
				assert.Equal(t, int64(0), fs.Superblock().DirCount)
				assert.Equal(t, int64(0), fs.Superblock().FileCount)

				assert.ErrorIs(t, fs.RemoveDirectory(ctx, "a"), data.ErrNotExist)
			})

			t.Run("RemoveAnchorRefused", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)
				ctx := t.Context()

				require.NoError(t, fs.MakeMountAnchor(ctx, "proc", 1))
				err := fs.RemoveDirectory(ctx, "proc")
				assert.ErrorIs(t, err, data.ErrMountBusy)
				assert.Equal(t, data.KindPolicy, data.KindOf(err))

				require.NoError(t, fs.MakeDirectory(ctx, "outer"))
				_, err = fs.ChangeDirectory(ctx, "outer")
				require.NoError(t, err)
				require.NoError(t, fs.MakeMountAnchor(ctx, "sys", 2))
				_, err = fs.ChangeDirectory(ctx, "..")
				require.NoError(t, err)

				assert.ErrorIs(t, fs.RemoveDirectory(ctx, "outer"), data.ErrMountBusy)

				entries, err := fs.List(ctx)
				require.NoError(t, err)
				assert.Len(t, entries, 2)
			})

			t.Run("InvalidNames", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)
				ctx := t.Context()

				assert.ErrorIs(t, fs.MakeDirectory(ctx, ""), data.ErrInvalid)
				assert.ErrorIs(t, fs.MakeDirectory(ctx, ".."), data.ErrInvalid)
				assert.ErrorIs(t, fs.MakeFile(ctx, "a/b"), data.ErrInvalid)
				assert.ErrorIs(t, fs.MakeMountAnchor(ctx, "x", -1), data.ErrInvalid)
			})

			t.Run("Dump", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)
				ctx := t.Context()

				require.NoError(t, fs.MakeFile(ctx, "note"))
				require.NoError(t, fs.MakeDirectory(ctx, "docs"))

				dump, err := fs.Dump(ctx)
				require.NoError(t, err)
				assert.Equal(t, "InodeCount: 3\nCurrent Path: 1\nInode   Dirname/Filename\n"+
					"1       SVFS\n3       docs\n2       note\n", dump)
			})

			t.Run("SpeedTest", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil, mount.WithSpeedTestFiles(25))
				ctx := t.Context()

				report, err := fs.SpeedTest(ctx)
				require.NoError(t, err)
				assert.Equal(t, 25, report.Entries)
				assert.Equal(t, data.RootInode, fs.CurrentInode())

				_, err = fs.ChangeDirectory(ctx, "speedtest")
				require.NoError(t, err)
				entries, err := fs.List(ctx)
				require.NoError(t, err)
				require.Len(t, entries, 25)
				assert.Equal(t, "f - test1", entries[0].String())
				assert.Equal(t, "f - test25", entries[24].String())

				_, err = fs.ChangeDirectory(ctx, "..")
				require.NoError(t, err)
				_, err = fs.SpeedTest(ctx)
				assert.ErrorIs(t, err, data.ErrExist)
			})

			t.Run("SpeedTestLarge", func(t *testing.T) {
				fs := newFilesystem(t, factory, nil)
				ctx := t.Context()

				report, err := fs.SpeedTestLarge(ctx)
				require.NoError(t, err)
				assert.Equal(t, 81920, report.Bytes)

				content, err := fs.ReadFile(ctx, "speed")
				require.NoError(t, err)
				assert.Len(t, content, 81920)
				assert.True(t, strings.HasPrefix(string(content), "ABCDEFGHIJABCDEFGHIJ"))
			})
		})
	}
}

type lockedHooks struct {
	mount.BaseHooks
	generated int
}

func (h *lockedHooks) Provision(ctx context.Context, tree mount.Tree) error {
	dir, err := tree.ProvisionDirectory(ctx, data.RootInode, "etc")
	if err != nil {
		return err
	}
	_, err = tree.ProvisionFile(ctx, dir, "motd", []byte("welcome"))
	return err
}

func (h *lockedHooks) Generate(ctx context.Context, tree mount.Tree, name string) ([]byte, bool, error) {
	if name != "counter" {
		return nil, false, nil
	}
	h.generated++
	return []byte(fmt.Sprintf("generated %d", h.generated)), true, nil
}

func (h *lockedHooks) Allow(op mount.Op, name string) error {
	if op == mount.OpRemoveFile && name == "counter" {
		return data.ProtectedEntry(name)
	}
	if op == mount.OpWrite && name == "motd" {
		return data.ReadOnlyFile(name)
	}
	return nil
}

func TestFilesystem_Hooks(t *testing.T) {
	hooks := &lockedHooks{}
	fs := newFilesystem(t, memory.NewFactory(), hooks)
	ctx := t.Context()

	_, err := fs.ChangeDirectory(ctx, "etc")
	require.NoError(t, err)

	content, err := fs.ReadFile(ctx, "motd")
	require.NoError(t, err)
	assert.Equal(t, "welcome", string(content))

	err = fs.WriteFile(ctx, "motd changed")
	assert.ErrorIs(t, err, data.ErrReadOnly)

	require.NoError(t, fs.MakeFile(ctx, "counter"))
	first, err := fs.ReadFile(ctx, "counter")
	require.NoError(t, err)
	second, err := fs.ReadFile(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, "generated 1", string(first))
	assert.Equal(t, "generated 2", string(second))

	err = fs.RemoveFile(ctx, "counter")
	assert.ErrorIs(t, err, data.ErrPermission)
	assert.Equal(t, int64(2), fs.Superblock().FileCount)
}

type smallStorage struct {
	*memory.MemoryBackend
}

func (s smallStorage) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{
			backend.CapabilityDirectories,
			backend.CapabilityFiles,
			backend.CapabilityVolatile,
		},
		MaxFileSize: 4,
	}
}

type durableStorage struct {
	*memory.MemoryBackend
}

func (durableStorage) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{backend.CapabilityDirectories, backend.CapabilityFiles},
	}
}

type blindStorage struct {
	*memory.MemoryBackend
}

func (blindStorage) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{}
}

func TestFilesystem_StorageCapabilities(t *testing.T) {
	ctx := t.Context()

	_, err := mount.New(ctx, "SVFS", nil, mount.WithStorage(func() (backend.EntryStorage, error) {
		return blindStorage{memory.NewMemoryBackend()}, nil
	}))
	assert.ErrorIs(t, err, data.ErrInvalid)

	_, err = mount.New(ctx, "SVFS", nil, mount.WithStorage(func() (backend.EntryStorage, error) {
		return durableStorage{memory.NewMemoryBackend()}, nil
	}))
	assert.ErrorIs(t, err, data.ErrInvalid)
	assert.ErrorContains(t, err, "volatile")

	fs := newFilesystem(t, func() (backend.EntryStorage, error) {
		return smallStorage{memory.NewMemoryBackend()}, nil
	}, nil)

	require.NoError(t, fs.MakeFile(ctx, "tiny"))
	require.NoError(t, fs.WriteFile(ctx, "tiny abcd"))
	assert.ErrorIs(t, fs.WriteFile(ctx, "tiny abcde"), data.ErrInvalid)
}

func TestNew_InvalidOptions(t *testing.T) {
	ctx := t.Context()

	_, err := mount.New(ctx, "", nil)
	assert.ErrorIs(t, err, data.ErrInvalid)

	for _, opt := range []mount.Option{
		mount.WithHost(-1),
		mount.WithStorage(nil),
		mount.WithSpeedTestFiles(0),
		mount.WithSpeedTestDoublings(-1),
	} {
		_, err := mount.New(ctx, "SVFS", nil, opt)
		assert.ErrorIs(t, err, data.ErrInvalid)
	}
}
