package builtin

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mwantia/kvfs/cmd"
)

type GetInfoCommand struct{}

func (*GetInfoCommand) Name() string        { return "getinfo" }
func (*GetInfoCommand) Description() string { return "Display info about current filesystem" }
func (*GetInfoCommand) Usage() string       { return "getinfo" }

func (*GetInfoCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	active := api.Active()
	sb := active.Superblock()

	fmt.Fprintln(writer, sb.Report())
	fmt.Fprintf(writer, "Superblock: %s\n", sb.ID)
	fmt.Fprintf(writer, "Storage: %s\n", active.StorageName())
	fmt.Fprintf(writer, "Current time-stamp counter: %d\n", api.Cycles())
	return 0, nil
}

func (*GetInfoCommand) GetFlags() *cmd.CommandFlagSet { return nil }

type MountsCommand struct{}

func (*MountsCommand) Name() string        { return "mounts" }
func (*MountsCommand) Description() string { return "List mounted filesystems" }
func (*MountsCommand) Usage() string       { return "mounts" }

func (*MountsCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tDEVICE\tHOST\tSTORAGE\tACTIVE")

	for _, m := range api.Mounts() {
		host := "-"
		if m.HasHost {
			host = fmt.Sprintf("%d", m.Host)
		}
		active := ""
		if m.Active {
			active = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", m.Index, m.Device, host, m.Storage, active)
	}

	if err := tw.Flush(); err != nil {
		return 1, err
	}
	return 0, nil
}

func (*MountsCommand) GetFlags() *cmd.CommandFlagSet { return nil }

type HelpCommand struct{}

func (*HelpCommand) Name() string        { return "help" }
func (*HelpCommand) Description() string { return "Show this command list" }
func (*HelpCommand) Usage() string       { return "help" }

func (*HelpCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	fmt.Fprintln(writer, "Commands:")
	for _, c := range api.Commands() {
		fmt.Fprintf(writer, "%s - %s\n", c.Usage(), c.Description())
	}
	fmt.Fprintln(writer, "You can change the text and background color in proc/color")
	return 0, nil
}

func (*HelpCommand) GetFlags() *cmd.CommandFlagSet { return nil }
