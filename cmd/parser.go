package cmd

import (
	"strings"

	"github.com/mwantia/kvfs/data"
)

// Parser parses user-defined arguments into flags
type Parser struct {
	flagSet *CommandFlagSet
}

func NewParser(flagSet *CommandFlagSet) *Parser {
	return &Parser{
		flagSet: flagSet,
	}
}

// ParseLine splits line on whitespace and parses the result.
// Commands without a flag set keep the line verbatim and get no flag handling.
func (cp *Parser) ParseLine(line string) (*CommandArgs, error) {
	raw := strings.Fields(line)
	if cp.flagSet == nil || len(cp.flagSet.Flags) == 0 {
		return &CommandArgs{
			Line:  line,
			Args:  raw,
			Flags: make(map[string]bool),
		}, nil
	}

	args, err := cp.Parse(raw)
	if err != nil {
		return nil, err
	}
	args.Line = strings.Join(args.Args, " ")
	return args, nil
}

// Parse separates switches from positional arguments.
// Short switches may be combined ("-ab"), "--" ends switch parsing.
func (cp *Parser) Parse(raw []string) (*CommandArgs, error) {
	args := &CommandArgs{
		Flags: make(map[string]bool),
	}
	if cp.flagSet == nil {
		args.Args = raw
		return args, nil
	}

	longToName := make(map[string]string)
	shortToName := make(map[string]string)
	for flagName, flag := range cp.flagSet.Flags {
		longToName[flag.Name] = flagName
		if flag.Short != "" {
			shortToName[flag.Short] = flagName
		}
	}

	for i, arg := range raw {
		switch {
		case arg == "--":
			args.Args = append(args.Args, raw[i+1:]...)
			return args, nil

		case strings.HasPrefix(arg, "--"):
			key := strings.TrimPrefix(arg, "--")
			flagName, exists := longToName[key]
			if !exists {
				return nil, data.Invalid("unknown flag: --%s", key)
			}
			args.Flags[flagName] = true

		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			for _, shortChar := range arg[1:] {
				flagName, exists := shortToName[string(shortChar)]
				if !exists {
					return nil, data.Invalid("unknown flag: -%c", shortChar)
				}
				args.Flags[flagName] = true
			}

		default:
			args.Args = append(args.Args, arg)
		}
	}

	return args, nil
}
