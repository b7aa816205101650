package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/kvfs/cmd"
)

type SpeedTestCommand struct{}

func (*SpeedTestCommand) Name() string        { return "speedtest" }
func (*SpeedTestCommand) Description() string { return "Create many empty files in a speedtest directory" }
func (*SpeedTestCommand) Usage() string       { return "speedtest" }

func (*SpeedTestCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	report, err := api.Active().SpeedTest(ctx)
	if err != nil {
		return 1, err
	}

	fmt.Fprintf(writer, "Created %d empty files in %d cycles\n", report.Entries, report.Cycles)
	return 0, nil
}

func (*SpeedTestCommand) GetFlags() *cmd.CommandFlagSet { return nil }

type SpeedTest2Command struct{}

func (*SpeedTest2Command) Name() string        { return "speedtest2" }
func (*SpeedTest2Command) Description() string { return "Write one large file" }
func (*SpeedTest2Command) Usage() string       { return "speedtest2" }

func (*SpeedTest2Command) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	report, err := api.Active().SpeedTestLarge(ctx)
	if err != nil {
		return 1, err
	}

	fmt.Fprintf(writer, "File with a string of size %d created in %d cycles\n", report.Bytes, report.Cycles)
	return 0, nil
}

func (*SpeedTest2Command) GetFlags() *cmd.CommandFlagSet { return nil }
