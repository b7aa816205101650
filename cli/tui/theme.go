package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// vgaColors maps console color names onto the 16 ANSI colors.
var vgaColors = map[string]lipgloss.Color{
	"Black":      lipgloss.Color("0"),
	"Red":        lipgloss.Color("1"),
	"Green":      lipgloss.Color("2"),
	"Brown":      lipgloss.Color("3"),
	"Blue":       lipgloss.Color("4"),
	"Magenta":    lipgloss.Color("5"),
	"Cyan":       lipgloss.Color("6"),
	"LightGray":  lipgloss.Color("7"),
	"DarkGray":   lipgloss.Color("8"),
	"LightRed":   lipgloss.Color("9"),
	"LightGreen": lipgloss.Color("10"),
	"Yellow":     lipgloss.Color("11"),
	"LightBlue":  lipgloss.Color("12"),
	"Pink":       lipgloss.Color("13"),
	"LightCyan":  lipgloss.Color("14"),
	"White":      lipgloss.Color("15"),
}

// ColorFor resolves a console color name, unknown names fall back to fallback.
func ColorFor(name string, fallback lipgloss.Color) lipgloss.Color {
	if c, ok := vgaColors[name]; ok {
		return c
	}
	return fallback
}

type Theme struct {
	Foreground lipgloss.Color
	Background lipgloss.Color

	TitleStyle     lipgloss.Style
	ShellStyle     lipgloss.Style
	PromptStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	DirectoryStyle lipgloss.Style
	MountStyle     lipgloss.Style
	FileStyle      lipgloss.Style
	BorderStyle    lipgloss.Style
	StatusBarStyle lipgloss.Style
	HelpStyle      lipgloss.Style
}

// NewTheme builds every style from the console foreground and background.
func NewTheme(fg, bg string) *Theme {
	fore := ColorFor(fg, vgaColors["Black"])
	back := ColorFor(bg, vgaColors["Yellow"])

	return &Theme{
		Foreground: fore,
		Background: back,

		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(back).
			Background(fore).
			Padding(0, 1),
		ShellStyle: lipgloss.NewStyle().
			Foreground(fore).
			Background(back),
		PromptStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(fore).
			Background(back),
		ErrorStyle: lipgloss.NewStyle().
			Foreground(vgaColors["LightRed"]).
			Bold(true),
		DirectoryStyle: lipgloss.NewStyle().
			Foreground(vgaColors["LightBlue"]).
			Bold(true),
		MountStyle: lipgloss.NewStyle().
			Foreground(vgaColors["LightGreen"]).
			Bold(true),
		FileStyle: lipgloss.NewStyle().
			Foreground(vgaColors["LightGray"]),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(fore).
			Padding(0, 1),
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(back).
			Background(fore).
			Padding(0, 1),
		HelpStyle: lipgloss.NewStyle().
			Foreground(vgaColors["DarkGray"]),
	}
}
