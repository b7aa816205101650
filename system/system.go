// Package system provides the machine facing collaborators of the filesystems:
// memory statistics, uptime, a cycle counter, a device scan and the color palette.
package system

import (
	"context"
	"time"
)

// MemoryStats is a snapshot of allocator and host memory figures.
type MemoryStats struct {
	HeapSize  uint64
	HeapStart uintptr
	HostTotal uint64
	HostUsed  uint64
}

type MemoryInfo interface {
	MemoryStats(ctx context.Context) (MemoryStats, error)
}

type UptimeCounter interface {
	Uptime() time.Duration
}

type CycleCounter interface {
	Cycles() uint64
}

// DeviceScanner produces a formatted report of the attached devices.
type DeviceScanner interface {
	Scan(ctx context.Context) (string, error)
}

// ColorSink receives foreground and background color names.
type ColorSink interface {
	SetColors(fg, bg string)
	Colors() (fg, bg string)
	// Changed reports and clears the pending color change.
	Changed() bool
}

// Collaborators bundles every dependency the synthetic filesystems read from.
type Collaborators struct {
	Memory  MemoryInfo
	Uptime  UptimeCounter
	Cycles  CycleCounter
	Devices DeviceScanner
	Colors  ColorSink
}

// Defaults wires the runtime and gopsutil implementations.
func Defaults() Collaborators {
	start := time.Now()

	return Collaborators{
		Memory:  NewRuntimeMemory(),
		Uptime:  NewUptime(start),
		Cycles:  NewCycleCounter(start),
		Devices: NewHostScanner(),
		Colors:  NewPalette(DefaultForeground, DefaultBackground),
	}
}

// WithDefaults fills every unset collaborator with its default implementation.
func (c Collaborators) WithDefaults() Collaborators {
	defaults := Defaults()

	if c.Memory == nil {
		c.Memory = defaults.Memory
	}
	if c.Uptime == nil {
		c.Uptime = defaults.Uptime
	}
	if c.Cycles == nil {
		c.Cycles = defaults.Cycles
	}
	if c.Devices == nil {
		c.Devices = defaults.Devices
	}
	if c.Colors == nil {
		c.Colors = defaults.Colors
	}
	return c
}
