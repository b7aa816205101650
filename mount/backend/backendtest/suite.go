// Package backendtest holds the behaviour every entry storage must share.
package backendtest

import (
	"testing"

	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/mount/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a fresh storage from factory for every case.
func Run(t *testing.T, factory backend.Factory) {
	t.Helper()

	open := func(t *testing.T) backend.EntryStorage {
		t.Helper()

		storage, err := factory()
		require.NoError(t, err)
		require.NoError(t, storage.Open(t.Context()))
		t.Cleanup(func() {
			_ = storage.Close(t.Context())
		})
		return storage
	}

	t.Run("Capabilities", func(t *testing.T) {
		storage := open(t)
		caps := storage.GetCapabilities()
		require.NotNil(t, caps)
		assert.Empty(t, caps.Missing(backend.RequiredCapabilities()...))
		assert.NotEmpty(t, storage.Name())
	})

	t.Run("DirectoryRoundTrip", func(t *testing.T) {
		storage := open(t)
		ctx := t.Context()

		dir := data.NewDirectory("SVFS", data.NoInode)
		dir.Subdirectories[2] = data.Subdirectory{Name: "docs", Kind: data.EntryDirectory}
		dir.Subdirectories[-1] = data.Subdirectory{Name: "proc", Kind: data.EntryMountAnchor, Target: 1}
		dir.Files[3] = "notes"
		require.NoError(t, storage.StoreDirectory(ctx, data.RootInode, dir))

		loaded, err := storage.LoadDirectory(ctx, data.RootInode)
		require.NoError(t, err)
		assert.Equal(t, "SVFS", loaded.Name)
		assert.Equal(t, data.NoInode, loaded.Parent)
		assert.Equal(t, dir.Subdirectories, loaded.Subdirectories)
		assert.Equal(t, dir.Files, loaded.Files)
	})

	t.Run("LoadedDirectoryIsCopy", func(t *testing.T) {
		storage := open(t)
		ctx := t.Context()

		require.NoError(t, storage.StoreDirectory(ctx, 1, data.NewDirectory("root", data.NoInode)))

		loaded, err := storage.LoadDirectory(ctx, 1)
		require.NoError(t, err)
		loaded.Files[2] = "dangling"

		again, err := storage.LoadDirectory(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, again.Files)
	})

	t.Run("StoreReplaces", func(t *testing.T) {
		storage := open(t)
		ctx := t.Context()

		require.NoError(t, storage.StoreDirectory(ctx, 1, data.NewDirectory("root", data.NoInode)))
		updated := data.NewDirectory("root", data.NoInode)
		updated.Files[2] = "a"
		require.NoError(t, storage.StoreDirectory(ctx, 1, updated))

		loaded, err := storage.LoadDirectory(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, map[data.Inode]string{2: "a"}, loaded.Files)
	})

	t.Run("MissingEntries", func(t *testing.T) {
		storage := open(t)
		ctx := t.Context()

		_, err := storage.LoadDirectory(ctx, 42)
		assert.ErrorIs(t, err, data.ErrNotExist)
		_, err = storage.LoadFile(ctx, 42)
		assert.ErrorIs(t, err, data.ErrNotExist)
		assert.ErrorIs(t, storage.DeleteDirectory(ctx, 42), data.ErrNotExist)
		assert.ErrorIs(t, storage.DeleteFile(ctx, 42), data.ErrNotExist)
	})

	t.Run("FileRoundTrip", func(t *testing.T) {
		storage := open(t)
		ctx := t.Context()

		file := data.NewFile("notes")
		file.Content = []byte("hello world")
		require.NoError(t, storage.StoreFile(ctx, 2, file))

		loaded, err := storage.LoadFile(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "notes", loaded.Name)
		assert.Equal(t, "hello world", string(loaded.Content))

		require.NoError(t, storage.StoreFile(ctx, 3, data.NewFile("empty")))
		empty, err := storage.LoadFile(ctx, 3)
		require.NoError(t, err)
		assert.Empty(t, empty.Content)
	})

	t.Run("OrderedInodes", func(t *testing.T) {
		storage := open(t)
		ctx := t.Context()

		for _, ino := range []data.Inode{5, 1, 3} {
			require.NoError(t, storage.StoreDirectory(ctx, ino, data.NewDirectory("d", 1)))
		}
		for _, ino := range []data.Inode{9, 2, 4} {
			require.NoError(t, storage.StoreFile(ctx, ino, data.NewFile("f")))
		}

		dirs, err := storage.Directories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []data.Inode{1, 3, 5}, dirs)

		files, err := storage.Files(ctx)
		require.NoError(t, err)
		assert.Equal(t, []data.Inode{2, 4, 9}, files)
	})

	t.Run("Delete", func(t *testing.T) {
		storage := open(t)
		ctx := t.Context()

		require.NoError(t, storage.StoreDirectory(ctx, 2, data.NewDirectory("docs", 1)))
		require.NoError(t, storage.StoreFile(ctx, 3, data.NewFile("notes")))

		require.NoError(t, storage.DeleteDirectory(ctx, 2))
		require.NoError(t, storage.DeleteFile(ctx, 3))

		dirs, err := storage.Directories(ctx)
		require.NoError(t, err)
		assert.Empty(t, dirs)
		files, err := storage.Files(ctx)
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}
