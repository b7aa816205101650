package builtin

import "github.com/mwantia/kvfs/cmd"

// Commands returns one instance of every builtin command.
func Commands() []cmd.Command {
	return []cmd.Command{
		&MkdirCommand{},
		&TouchCommand{},
		&ReadCommand{},
		&WriteCommand{},
		&CdCommand{},
		&LsCommand{},
		&RmfCommand{},
		&RmdCommand{},
		&GetInfoCommand{},
		&GetPathCommand{},
		&SpeedTestCommand{},
		&SpeedTest2Command{},
		&PwdCommand{},
		&MountsCommand{},
		&HelpCommand{},
	}
}
