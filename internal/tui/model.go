package tui

import (
	"cardsh/internal/editbuf"
	"cardsh/internal/history"
	"cardsh/internal/kernel"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// mode is the shell loop state: the primary prompt, or one of the nested
// contexts that suspend it. Nested contexts never touch the prompt buffer;
// it resumes unchanged when they exit.
type mode int

const (
	modePrompt mode = iota
	modePassword
	modeEditor
	modeRepl
	modeRecovery
)

// KernelFactory builds a kernel against a terminal. Kept so reboot can
// construct a fresh kernel mid-session.
type KernelFactory func(term kernel.Terminal) *kernel.Kernel

// AppModel holds the TUI state.
type AppModel struct {
	factory KernelFactory
	kernel  *kernel.Kernel

	mode  mode
	input *editbuf.Line
	hist  *history.Ring

	// Password context
	password       *editbuf.Line
	passwordDone   func(string)
	passwordPrompt string

	// Editor context. editorReturn is the mode Escape resumes: the editor can
	// be entered from the prompt or from the recovery console, and leaving it
	// must not drop a crashed shell back onto the primary prompt.
	editor       *kernel.EditorSession
	editorStatus string
	editorReturn mode

	// Nested interpreter context
	repl *editbuf.Line

	// Recovery context
	recovery *editbuf.Line
	crashMsg string

	// Console scrollback
	console    viewport.Model
	lines      []string
	ready      bool
	WindowSize tea.WindowSizeMsg
}

// NewModel boots a shell. The model is the kernel's display collaborator,
// so the kernel is built against it.
func NewModel(factory KernelFactory) *AppModel {
	m := &AppModel{
		factory: factory,
		input:   editbuf.NewLine(editbuf.DefaultWidth),
		hist:    history.New(),
	}
	m.kernel = factory(m)
	m.kernel.Boot()
	return m
}

// Init implements tea.Model. Boot already ran in NewModel.
func (m *AppModel) Init() tea.Cmd {
	return nil
}

// reboot discards the console and all session state and boots a fresh
// kernel, exactly as a power cycle would.
func (m *AppModel) reboot() {
	m.lines = nil
	if m.ready {
		m.console.SetContent("")
	}
	m.kernel = m.factory(m)
	m.hist = history.New()
	m.input.Clear()
	m.mode = modePrompt
	m.kernel.Boot()
}
