package cmd

import (
	"strings"
	"unicode"
)

// CommandArgs contains parsed command arguments
type CommandArgs struct {
	// Line is everything after the verb, with the separating space removed.
	// Names and payloads may contain spaces, so most commands read this.
	Line string

	// Positional arguments (command-specific)
	Args []string

	// Switches that were given, keyed by flag name
	Flags map[string]bool
}

// Bool reports whether a switch was given.
func (ca *CommandArgs) Bool(name string) bool {
	return ca.Flags[name]
}

// SplitLine separates the verb from the rest of a command line.
// Trailing whitespace is stripped, spaces inside names are kept.
func SplitLine(line string) (verb string, rest string) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	line = strings.TrimLeft(line, " \t")
	verb, rest, _ = strings.Cut(line, " ")
	return verb, rest
}

// CommandFlagSet defines the switches a command accepts
type CommandFlagSet struct {
	Flags map[string]*CommandFlag
}

// CommandFlag is a boolean switch, given as --name or -short
type CommandFlag struct {
	Name        string `json:"name"`
	Short       string `json:"short"`
	Description string `json:"description"`
}
