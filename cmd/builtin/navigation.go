package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/kvfs/cmd"
	"github.com/mwantia/kvfs/mount"
)

type CdCommand struct{}

func (*CdCommand) Name() string        { return "cd" }
func (*CdCommand) Description() string { return "Change directory" }
func (*CdCommand) Usage() string       { return "cd <dirname>" }

func (*CdCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	tr, err := api.ChangeDirectory(ctx, args.Line)
	if err != nil {
		return 1, err
	}

	if tr.Kind == mount.TransitionDescend {
		fmt.Fprintf(writer, "Switched to %s\n", api.Active().DeviceName())
	}
	return 0, nil
}

func (*CdCommand) GetFlags() *cmd.CommandFlagSet { return nil }

type LsCommand struct{}

// Name returns the command identifier
func (*LsCommand) Name() string {
	return "ls"
}

// Description returns human-readable help text
func (*LsCommand) Description() string {
	return "Display all files and directories in the current folder"
}

// Usage returns a usage string for help
func (*LsCommand) Usage() string {
	return "ls [-i]"
}

// Execute runs the command with parsed arguments
// Returns exit code (0 = success) and error message
func (*LsCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	entries, err := api.Active().List(ctx)
	if err != nil {
		return 1, err
	}

	inodes := args.Bool("inode")
	for _, entry := range entries {
		if inodes {
			fmt.Fprintf(writer, "%d %s\n", entry.Inode, entry)
			continue
		}
		fmt.Fprintln(writer, entry)
	}
	return 0, nil
}

// GetFlags returns the flag set for this command
func (*LsCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"inode": {
				Name:        "inode",
				Short:       "i",
				Description: "Prefix every entry with its inode",
			},
		},
	}
}

type GetPathCommand struct{}

func (*GetPathCommand) Name() string        { return "getpath" }
func (*GetPathCommand) Description() string { return "Show path inode number" }
func (*GetPathCommand) Usage() string       { return "getpath" }

func (*GetPathCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	fmt.Fprintf(writer, "Current Path: %d\n", api.Active().CurrentInode())
	return 0, nil
}

func (*GetPathCommand) GetFlags() *cmd.CommandFlagSet { return nil }

type PwdCommand struct{}

func (*PwdCommand) Name() string        { return "pwd" }
func (*PwdCommand) Description() string { return "Show the full path across mounted filesystems" }
func (*PwdCommand) Usage() string       { return "pwd" }

func (*PwdCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	path, err := api.FullPath(ctx)
	if err != nil {
		return 1, err
	}

	fmt.Fprintln(writer, path)
	return 0, nil
}

func (*PwdCommand) GetFlags() *cmd.CommandFlagSet { return nil }
