package log

import "github.com/fatih/color"

var levelColors = map[LogLevel]*color.Color{
	Debug: color.New(color.FgBlue),
	Info:  color.New(color.FgGreen),
	Warn:  color.New(color.FgYellow),
	Error: color.New(color.FgRed),
	Fatal: color.New(color.FgMagenta, color.Bold),
}

// Colorize wraps line in the terminal color assigned to the level.
func Colorize(l LogLevel, line string) string {
	c, ok := levelColors[l]
	if !ok {
		return line
	}
	// The logger decides about terminals itself, so the global detection is bypassed.
	c.EnableColor()
	return c.Sprint(line)
}
