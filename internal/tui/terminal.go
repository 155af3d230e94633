package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Print appends a line to the console scrollback. The model satisfies
// kernel.Terminal so every builtin writes through here.
func (m *AppModel) Print(text string, style ...lipgloss.Style) {
	if len(style) > 0 {
		text = style[0].Render(text)
	}
	m.lines = append(m.lines, text)
	m.syncConsole()
}

// Clear wipes the scrollback.
func (m *AppModel) Clear() {
	m.lines = nil
	m.syncConsole()
}

func (m *AppModel) syncConsole() {
	if !m.ready {
		return
	}
	m.console.SetContent(strings.Join(m.lines, "\n"))
	m.console.GotoBottom()
}
