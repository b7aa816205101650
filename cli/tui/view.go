package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwantia/kvfs/data"
)

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderTitle(),
		m.renderContent(),
		m.renderInput(),
		m.renderStatus(),
		m.renderHelpBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTitle() string {
	title := fmt.Sprintf("kvfs - %s", m.device)
	return m.theme.TitleStyle.Width(m.width).Render(title)
}

// renderContent renders the command output next to the directory pane
func (m *Model) renderContent() string {
	leftWidth := m.output.Width + 2
	rightWidth := max(m.width-leftWidth-6, 10)

	outputBox := m.theme.BorderStyle.
		Width(leftWidth).
		Height(m.output.Height).
		Render(m.theme.ShellStyle.Render(m.output.View()))

	entriesBox := m.theme.BorderStyle.
		Width(rightWidth).
		Height(m.output.Height).
		Render(m.renderEntries(m.output.Height))

	return lipgloss.JoinHorizontal(lipgloss.Top, outputBox, entriesBox)
}

func (m *Model) renderEntries(height int) string {
	if len(m.entries) == 0 {
		return m.theme.FileStyle.Render("(empty directory)")
	}

	var lines []string
	for i, entry := range m.entries {
		if i == height-1 && len(m.entries) > height {
			lines = append(lines, m.theme.HelpStyle.Render(fmt.Sprintf("... %d more", len(m.entries)-i)))
			break
		}

		style := m.theme.FileStyle
		switch entry.Kind {
		case data.EntryMountAnchor:
			style = m.theme.MountStyle
		case data.EntryDirectory:
			style = m.theme.DirectoryStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("%-24s %s", entry.DisplayName(), entry.Tag())))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderInput() string {
	return m.input.View()
}

// renderStatus renders the status bar
func (m *Model) renderStatus() string {
	left := fmt.Sprintf("%d entries", len(m.entries))
	if m.lastCode != 0 {
		left = fmt.Sprintf("%s | exit %d", left, m.lastCode)
	}

	right := ""
	if m.errorMsg != "" {
		right = m.theme.ErrorStyle.Render(m.errorMsg)
	}

	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-4, 0)

	statusLine := left + strings.Repeat(" ", spacing) + right
	return m.theme.StatusBarStyle.Width(m.width).Render(statusLine)
}

// renderHelpBar renders the bottom help bar
func (m *Model) renderHelpBar() string {
	return m.theme.HelpStyle.Render(m.help.View(m.keys))
}
