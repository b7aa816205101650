package system

import (
	"context"
	"runtime"
	"unsafe"

	"github.com/shirou/gopsutil/v4/mem"
)

// RuntimeMemory reports Go heap usage and, when available, host memory through gopsutil.
type RuntimeMemory struct {
	anchor *[8]byte
}

// NewRuntimeMemory pins an allocation whose address stands in for the heap start.
func NewRuntimeMemory() *RuntimeMemory {
	return &RuntimeMemory{
		anchor: new([8]byte),
	}
}

func (rm *RuntimeMemory) MemoryStats(ctx context.Context) (MemoryStats, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	stats := MemoryStats{
		HeapSize:  ms.HeapSys,
		HeapStart: uintptr(unsafe.Pointer(rm.anchor)),
	}

	// Host figures are optional, containers often hide them.
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.HostTotal = vm.Total
		stats.HostUsed = vm.Used
	}

	return stats, nil
}
