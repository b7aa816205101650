package tui

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/kvfs/mount"
	"github.com/mwantia/kvfs/system"
)

// Shell is the registry as driven by the terminal UI.
type Shell interface {
	Execute(ctx context.Context, w io.Writer, line string) (int, error)
	FullPath(ctx context.Context) (string, error)
	Active() (mount.Operations, int)
	Colors() system.ColorSink
}

const maxHistory = 100

// Model represents the state of the TUI application
type Model struct {
	// Core components
	ctx   context.Context
	shell Shell
	theme *Theme
	keys  KeyMap
	help  help.Model

	input  textinput.Model
	output viewport.Model
	lines  []string

	history    []string
	historyPos int

	// Active filesystem state
	path     string
	device   string
	entries  []Entry
	lastCode int
	errorMsg string

	// View state
	width        int
	height       int
	showFullHelp bool
}

// NewModel creates a new TUI model
func NewModel(ctx context.Context, shell Shell) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter command..."
	ti.CharLimit = 256
	ti.Focus()

	m := &Model{
		ctx:    ctx,
		shell:  shell,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  ti,
		output: viewport.New(80, 20),
		lines: []string{
			"Type help to list the available commands.",
			"You can change the text and background color in proc/color",
		},
	}
	m.applyTheme(NewTheme(shell.Colors().Colors()))
	m.output.SetContent(strings.Join(m.lines, "\n"))
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadState(),
		textinput.Blink,
	)
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case commandExecutedMsg:
		m.appendOutput(m.input.Prompt+msg.line, msg.output)
		m.lastCode = msg.code
		m.errorMsg = ""
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
		}
		if m.shell.Colors().Changed() {
			m.applyTheme(NewTheme(m.shell.Colors().Colors()))
		}
		return m, m.loadState()

	case stateLoadedMsg:
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			return m, nil
		}
		m.path = msg.path
		m.device = msg.device
		m.entries = msg.entries
		m.input.Prompt = msg.path + "> "
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showFullHelp = !m.showFullHelp
		m.help.ShowAll = m.showFullHelp
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Execute):
		line := m.input.Value()
		m.input.SetValue("")
		if strings.TrimSpace(line) == "" {
			return m, nil
		}
		m.pushHistory(line)
		return m, m.execute(line)

	case key.Matches(msg, m.keys.HistoryUp):
		m.moveHistory(-1)
		return m, nil

	case key.Matches(msg, m.keys.HistoryDown):
		m.moveHistory(1)
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Clear):
		m.lines = nil
		m.output.SetContent("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) applyTheme(theme *Theme) {
	m.theme = theme
	m.input.PromptStyle = theme.PromptStyle
	m.input.TextStyle = theme.ShellStyle
}

// resize splits the width between the output and the directory pane.
func (m *Model) resize() {
	reserved := 7
	if m.showFullHelp {
		reserved += 3
	}

	m.output.Width = max(m.width*2/3-4, 10)
	m.output.Height = max(m.height-reserved, 3)
	m.output.GotoBottom()
}

func (m *Model) appendOutput(header, output string) {
	m.lines = append(m.lines, header)
	if output = strings.TrimRight(output, "\n"); output != "" {
		m.lines = append(m.lines, strings.Split(output, "\n")...)
	}

	m.output.SetContent(strings.Join(m.lines, "\n"))
	m.output.GotoBottom()
}

func (m *Model) pushHistory(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
		if len(m.history) > maxHistory {
			m.history = m.history[1:]
		}
	}
	m.historyPos = len(m.history)
}

func (m *Model) moveHistory(delta int) {
	if len(m.history) == 0 {
		return
	}

	m.historyPos = min(max(m.historyPos+delta, 0), len(m.history))
	if m.historyPos == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.historyPos])
	m.input.CursorEnd()
}

// Messages for async operations
type commandExecutedMsg struct {
	line   string
	output string
	code   int
	err    error
}

type stateLoadedMsg struct {
	path    string
	device  string
	entries []Entry
	err     error
}

func (m *Model) execute(line string) tea.Cmd {
	return func() tea.Msg {
		var buf bytes.Buffer
		code, err := m.shell.Execute(m.ctx, &buf, line)
		return commandExecutedMsg{line: line, output: buf.String(), code: code, err: err}
	}
}

func (m *Model) loadState() tea.Cmd {
	return func() tea.Msg {
		path, err := m.shell.FullPath(m.ctx)
		if err != nil {
			return stateLoadedMsg{err: err}
		}

		active, _ := m.shell.Active()
		entries, err := active.List(m.ctx)
		if err != nil {
			return stateLoadedMsg{err: err}
		}

		return stateLoadedMsg{
			path:    path,
			device:  active.DeviceName(),
			entries: NewEntries(entries),
		}
	}
}
