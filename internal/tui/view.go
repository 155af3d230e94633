package tui

import (
	"fmt"
	"strings"

	"cardsh/internal/kernel"
	"cardsh/internal/session"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	rootPromptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	guestPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	cwdStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	passwordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	replStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	recoveryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	savedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
)

func (m *AppModel) View() string {
	if !m.ready {
		return "\n  Starting...\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("cardsh " + kernel.Version))
	b.WriteString("\n")
	b.WriteString(m.console.View())
	b.WriteString("\n")

	switch m.mode {
	case modePrompt:
		b.WriteString(m.promptLine(m.input.Window()))
	case modePassword:
		b.WriteString(passwordStyle.Render(m.passwordPrompt + ": "))
		b.WriteString(m.password.Window())
	case modeEditor:
		return m.editorView()
	case modeRepl:
		b.WriteString(replStyle.Render(">>> "))
		b.WriteString(m.repl.Window())
	case modeRecovery:
		b.WriteString(recoveryStyle.Render("RECOVERY> "))
		b.WriteString(m.recovery.Window())
	}

	return b.String()
}

func (m *AppModel) promptLine(input string) string {
	s := m.kernel.Session
	sigil := guestPromptStyle
	if s.User == session.Root {
		sigil = rootPromptStyle
	}
	return fmt.Sprintf("%s%s %s",
		cwdStyle.Render(s.User+":"+s.DisplayCWD()),
		sigil.Render(s.Prompt()),
		input)
}

// editorView replaces the whole screen, like the device editor does.
func (m *AppModel) editorView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("nano " + m.editor.Path))
	b.WriteString("\n")
	b.WriteString(m.editor.Buf.View())
	b.WriteString("\n")
	if m.editorStatus != "" {
		style := savedStyle
		if strings.HasPrefix(m.editorStatus, "ERR") {
			style = recoveryStyle
		}
		b.WriteString(style.Render(m.editorStatus))
	} else {
		b.WriteString(statusStyle.Render(m.editor.Buf.Status()))
	}
	return b.String()
}
