package cmd

import (
	"context"
	"io"

	"github.com/mwantia/kvfs/mount"
)

// API is the registry as seen by a running command.
// Every method runs while the registry lock is already held.
type API interface {
	// Active returns the filesystem currently receiving commands.
	Active() mount.Operations

	// ChangeDirectory changes the directory of the active filesystem and
	// switches the active filesystem when a mount boundary is crossed.
	ChangeDirectory(ctx context.Context, name string) (mount.Transition, error)

	// FullPath stitches the active path onto the path of its host.
	FullPath(ctx context.Context) (string, error)

	// Mounts describes every filesystem in the registry.
	Mounts() []MountInfo

	// Commands returns every registered command ordered by name.
	Commands() []Command

	// Cycles reads the cycle counter.
	Cycles() uint64
}

// MountInfo describes one registry entry.
type MountInfo struct {
	Index   int    `json:"index"`
	Device  string `json:"device"`
	Host    int    `json:"host"`
	HasHost bool   `json:"has_host"`
	Storage string `json:"storage"`
	Active  bool   `json:"active"`
}

// Command represents an executable command within the virtual filesystem.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "ls -i")
	Usage() string

	// Execute runs the command with parsed arguments
	// The writer parameter is where command output should be written
	// Returns exit code (0 = success) and error message
	Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}
