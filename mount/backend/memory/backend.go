package memory

import (
	"context"
	"sync"

	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/mount/backend"
	"github.com/tidwall/btree"
)

// MemoryBackend keeps both tables in ordered B-trees keyed by inode.
type MemoryBackend struct {
	mu sync.RWMutex

	directories *btree.Map[data.Inode, *data.Directory]
	files       *btree.Map[data.Inode, *data.File]
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		directories: btree.NewMap[data.Inode, *data.Directory](0),
		files:       btree.NewMap[data.Inode, *data.File](0),
	}
}

// NewFactory returns a backend.Factory producing memory backends.
func NewFactory() backend.Factory {
	return func() (backend.EntryStorage, error) {
		return NewMemoryBackend(), nil
	}
}

// Returns the identifier name defined for this backend
func (*MemoryBackend) Name() string {
	return "memory"
}

// Open is part of the lifecycle behavious and gets called when opening this backend.
func (mb *MemoryBackend) Open(ctx context.Context) error {
	// No initialization needed - backend is ready to use
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (mb *MemoryBackend) Close(ctx context.Context) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.directories.Clear()
	mb.files.Clear()

	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (mb *MemoryBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{
			backend.CapabilityDirectories,
			backend.CapabilityFiles,
			backend.CapabilityOrdered,
			backend.CapabilityVolatile,
		},
	}
}
