package builtin

import (
	"context"
	"io"

	"github.com/mwantia/kvfs/cmd"
)

type MkdirCommand struct{}

func (*MkdirCommand) Name() string        { return "mkdir" }
func (*MkdirCommand) Description() string { return "Create new directory" }
func (*MkdirCommand) Usage() string       { return "mkdir <dirname>" }

func (*MkdirCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := api.Active().MakeDirectory(ctx, args.Line); err != nil {
		return 1, err
	}
	return 0, nil
}

func (*MkdirCommand) GetFlags() *cmd.CommandFlagSet { return nil }

type TouchCommand struct{}

func (*TouchCommand) Name() string        { return "touch" }
func (*TouchCommand) Description() string { return "Create new file" }
func (*TouchCommand) Usage() string       { return "touch <filename>" }

func (*TouchCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := api.Active().MakeFile(ctx, args.Line); err != nil {
		return 1, err
	}
	return 0, nil
}

func (*TouchCommand) GetFlags() *cmd.CommandFlagSet { return nil }

type RmfCommand struct{}

func (*RmfCommand) Name() string        { return "rmf" }
func (*RmfCommand) Description() string { return "Delete file" }
func (*RmfCommand) Usage() string       { return "rmf <filename>" }

func (*RmfCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := api.Active().RemoveFile(ctx, args.Line); err != nil {
		return 1, err
	}
	return 0, nil
}

func (*RmfCommand) GetFlags() *cmd.CommandFlagSet { return nil }

type RmdCommand struct{}

func (*RmdCommand) Name() string        { return "rmd" }
func (*RmdCommand) Description() string { return "Delete directory and everything below it" }
func (*RmdCommand) Usage() string       { return "rmd <dirname>" }

func (*RmdCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if err := api.Active().RemoveDirectory(ctx, args.Line); err != nil {
		return 1, err
	}
	return 0, nil
}

func (*RmdCommand) GetFlags() *cmd.CommandFlagSet { return nil }
