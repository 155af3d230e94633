package tui

import (
	"fmt"
	"sort"
	"strings"

	"cardsh/internal/editbuf"
	"cardsh/internal/fspath"
	"cardsh/internal/kernel"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events. Keys are dispatched per mode; everything outside
// the current mode is inert, matching the single-foreground-task loop of
// the device.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		h := msg.Height - 4 // minus title and input rows
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.console = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.console.Width = msg.Width
			m.console.Height = h
		}
		m.syncConsole()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modePrompt:
			return m.updatePrompt(msg)
		case modePassword:
			return m.updatePassword(msg)
		case modeEditor:
			return m.updateEditor(msg)
		case modeRepl:
			return m.updateRepl(msg)
		case modeRecovery:
			return m.updateRecovery(msg)
		}
	}

	return m, nil
}

func (m *AppModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		line := m.input.String()
		s := m.kernel.Session
		m.Print(fmt.Sprintf("%s:%s%s %s", s.User, s.DisplayCWD(), s.Prompt(), line), kernel.StyleEcho)
		m.hist.Append(line)
		m.input.Clear()
		m.runLine(line)
	case "up":
		if prev, ok := m.hist.Prev(); ok {
			m.input.SetContent(prev)
		}
	case "down":
		if next, ok := m.hist.Next(); ok {
			m.input.SetContent(next)
		} else {
			m.input.Clear()
		}
	case "left":
		m.input.Move(-1)
	case "right":
		m.input.Move(1)
	case "backspace":
		m.input.DeleteBack()
	case "tab":
		m.input.SetContent(m.kernel.Complete(m.input.String()))
	case "esc":
		// No enclosing context to leave.
	default:
		m.insertRunes(m.input, msg)
	}
	return m, nil
}

func (m *AppModel) updatePassword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		done := m.passwordDone
		secret := m.password.String()
		m.mode = modePrompt
		m.password = nil
		m.passwordDone = nil
		done(secret)
	case "esc":
		// Abandon the prompt; the continuation never runs.
		m.mode = modePrompt
		m.password = nil
		m.passwordDone = nil
	case "left":
		m.password.Move(-1)
	case "right":
		m.password.Move(1)
	case "backspace":
		m.password.DeleteBack()
	default:
		m.insertRunes(m.password, msg)
	}
	return m, nil
}

func (m *AppModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	buf := m.editor.Buf
	m.editorStatus = ""
	switch msg.String() {
	case "esc":
		m.editor = nil
		m.mode = m.editorReturn
		m.Clear()
	case "up":
		buf.CursorUp()
	case "down":
		buf.CursorDown()
	case "left":
		buf.CursorLeft()
	case "right":
		buf.CursorRight()
	case "enter":
		buf.SplitLine()
	case "backspace":
		buf.DeleteBack()
	case "tab":
		buf.InsertTab()
	case "ctrl+s":
		if buf.ReadOnly() {
			break
		}
		if err := m.editor.Commit(); err != nil {
			m.editorStatus = "ERR: Read-Only?"
		} else {
			m.editorStatus = "SAVED!"
		}
	default:
		m.insertText(buf, msg)
	}
	return m, nil
}

func (m *AppModel) updateRepl(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.repl = nil
		m.mode = modePrompt
		m.Print("Exited REPL.")
	case "enter":
		line := m.repl.String()
		m.Print(">>> "+line, kernel.StyleEcho)
		m.repl.Clear()
		m.kernel.Eval(line)
	case "left":
		m.repl.Move(-1)
	case "right":
		m.repl.Move(1)
	case "backspace":
		m.repl.DeleteBack()
	default:
		m.insertRunes(m.repl, msg)
	}
	return m, nil
}

// runLine executes one prompt line. A panicking handler drops the shell
// into recovery instead of killing the program, so the filesystem stays
// reachable for repairs.
func (m *AppModel) runLine(line string) {
	defer func() {
		if r := recover(); r != nil {
			m.crashMsg = fmt.Sprint(r)
			m.recovery = editbuf.NewLine(editbuf.DefaultWidth)
			m.mode = modeRecovery
			m.Print("FATAL: "+m.crashMsg, kernel.StyleErr)
			m.Print("Entering recovery. Commands: ls nano reboot help", kernel.StyleWarn)
		}
	}()
	m.applyRequest(m.kernel.Exec(line))
}

func (m *AppModel) applyRequest(req *kernel.Request) {
	if req == nil {
		return
	}
	switch req.Kind {
	case kernel.ReqPassword:
		m.password = editbuf.NewMaskedLine(editbuf.DefaultWidth)
		m.passwordDone = req.Done
		m.passwordPrompt = req.Prompt
		m.mode = modePassword
	case kernel.ReqEditor:
		m.editor = req.Editor
		m.editorStatus = ""
		m.editorReturn = modePrompt
		m.mode = modeEditor
	case kernel.ReqRepl:
		m.repl = editbuf.NewLine(editbuf.DefaultWidth)
		m.mode = modeRepl
	case kernel.ReqReboot:
		m.reboot()
	}
}

// Recovery works directly against the filesystem with a fixed command set.
// It deliberately avoids the full dispatcher, which is what just crashed.
func (m *AppModel) updateRecovery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		line := strings.TrimSpace(m.recovery.String())
		m.recovery.Clear()
		m.Print("RECOVERY> "+line, kernel.StyleEcho)
		m.recoveryExec(line)
	case "left":
		m.recovery.Move(-1)
	case "right":
		m.recovery.Move(1)
	case "backspace":
		m.recovery.DeleteBack()
	default:
		m.insertRunes(m.recovery, msg)
	}
	return m, nil
}

func (m *AppModel) recoveryExec(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "ls":
		dir := "/"
		if len(fields) > 1 {
			dir = fspath.Resolve(fields[1], "/", "/")
		}
		names, err := m.kernel.FS.List(dir)
		if err != nil {
			m.Print("Err: "+err.Error(), kernel.StyleErr)
			return
		}
		sort.Strings(names)
		m.Print(strings.Join(names, "  "))
	case "nano":
		if len(fields) < 2 {
			m.Print("Usage: nano <file>", kernel.StyleErr)
			return
		}
		p := fspath.Resolve(fields[1], "/", "/")
		content := ""
		if data, err := m.kernel.FS.ReadFile(p); err == nil {
			content = string(data)
		}
		m.editor = kernel.RecoveryEditor(m.kernel, p, content)
		m.editorStatus = ""
		m.editorReturn = modeRecovery
		m.mode = modeEditor
	case "reboot":
		m.reboot()
	case "help":
		m.Print("ls [dir]  nano <file>  reboot  help", kernel.StyleInfo)
	default:
		m.Print("Unknown. Commands: ls nano reboot help", kernel.StyleErr)
	}
}

func (m *AppModel) insertRunes(l *editbuf.Line, msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		l.InsertString(string(msg.Runes))
	case tea.KeySpace:
		l.Insert(' ')
	}
}

func (m *AppModel) insertText(t *editbuf.Text, msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			t.Insert(r)
		}
	case tea.KeySpace:
		t.Insert(' ')
	}
}
