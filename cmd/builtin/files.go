package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/kvfs/cmd"
)

type ReadCommand struct{}

func (*ReadCommand) Name() string        { return "read" }
func (*ReadCommand) Description() string { return "Read a file" }
func (*ReadCommand) Usage() string       { return "read <filename>" }

func (*ReadCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	content, err := api.Active().ReadFile(ctx, args.Line)
	if err != nil {
		return 1, err
	}

	fmt.Fprintf(writer, "%s\n", content)
	return 0, nil
}

func (*ReadCommand) GetFlags() *cmd.CommandFlagSet { return nil }

type WriteCommand struct{}

func (*WriteCommand) Name() string        { return "write" }
func (*WriteCommand) Description() string { return "Write to a file" }
func (*WriteCommand) Usage() string       { return "write <filename> <text>" }

// Execute hands the whole line to the filesystem, which splits name and payload itself.
func (*WriteCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := api.Active().WriteFile(ctx, args.Line); err != nil {
		return 1, err
	}
	return 0, nil
}

func (*WriteCommand) GetFlags() *cmd.CommandFlagSet { return nil }
