package memory

import (
	"testing"

	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/mount/backend/backendtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend(t *testing.T) {
	backendtest.Run(t, NewFactory())
}

func TestMemoryBackend_CloseClearsTables(t *testing.T) {
	mb := NewMemoryBackend()
	ctx := t.Context()

	require.NoError(t, mb.StoreDirectory(ctx, 1, data.NewDirectory("root", data.NoInode)))
	require.NoError(t, mb.StoreFile(ctx, 2, data.NewFile("a")))
	require.NoError(t, mb.Close(ctx))

	assert.Equal(t, 0, mb.directories.Len())
	assert.Equal(t, 0, mb.files.Len())
}
