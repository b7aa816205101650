// Package mounts provides the filesystem back-ends that plug into the generic tree engine.
package mounts

import (
	"fmt"
	"strings"

	"github.com/mwantia/kvfs/data"
	"github.com/mwantia/kvfs/mount/backend"
	"github.com/mwantia/kvfs/mount/backend/memory"
	"github.com/mwantia/kvfs/mount/backend/sqlite"
)

const (
	RootDevice = "SVFS"
	ProcDevice = "proc"
	SysDevice  = "sys"
)

// StorageDrivers lists the names accepted by StorageFactory.
var StorageDrivers = []string{"memory", "sqlite"}

// StorageFactory resolves a storage driver name into a factory.
// Every storage it produces is private to one filesystem and lives in memory,
// so sqlite always opens its own ":memory:" database.
func StorageFactory(driver string) (backend.Factory, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "memory":
		return memory.NewFactory(), nil
	case "sqlite":
		return sqlite.NewFactory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver '%s', expected one of %v: %w", driver, StorageDrivers, data.ErrInvalid)
	}
}
