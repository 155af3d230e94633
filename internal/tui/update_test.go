package tui

import (
	"strings"
	"testing"

	"cardsh/internal/access"
	"cardsh/internal/kernel"
	"cardsh/internal/netio"
	"cardsh/internal/session"
	"cardsh/internal/vfs"

	tea "github.com/charmbracelet/bubbletea"
)

// panicRunner stands in for the interpreter bridge; Run faults so tests can
// drive the shell into recovery.
type panicRunner struct{}

func (panicRunner) Run(path string, argv []string) (string, error) { panic("interpreter fault") }
func (panicRunner) Eval(code string) (string, error)               { return "4", nil }

func newTestModel(t *testing.T) (*AppModel, vfs.FS) {
	t.Helper()
	fs := vfs.NewDirFS(t.TempDir())
	for _, d := range []string{"/home", "/home/guest", "/home/root", "/bin"} {
		if err := fs.Mkdir(d); err != nil {
			t.Fatal(err)
		}
	}
	m := NewModel(func(term kernel.Terminal) *kernel.Kernel {
		return kernel.New(kernel.Options{
			FS:         fs,
			Term:       term,
			Radio:      &netio.HostRadio{},
			Dev:        kernel.HostDevice{},
			Runner:     panicRunner{},
			Policy:     access.DefaultPolicy(),
			SearchPath: []string{"/bin"},
		})
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, fs
}

func press(m *AppModel, key tea.KeyType) {
	m.Update(tea.KeyMsg{Type: key})
}

func typeLine(m *AppModel, line string) {
	for _, r := range line {
		if r == ' ' {
			press(m, tea.KeySpace)
		} else {
			m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}
	press(m, tea.KeyEnter)
}

func console(m *AppModel) string { return strings.Join(m.lines, "\n") }

func TestPromptExecutesLine(t *testing.T) {
	m, _ := newTestModel(t)
	typeLine(m, "echo hi")
	if !strings.Contains(console(m), "hi") {
		t.Fatalf("console missing output:\n%s", console(m))
	}
	if m.input.Len() != 0 {
		t.Fatalf("input not cleared: %q", m.input.String())
	}
	if m.mode != modePrompt {
		t.Fatalf("mode = %d, want prompt", m.mode)
	}
}

func TestHistoryRecall(t *testing.T) {
	m, _ := newTestModel(t)
	typeLine(m, "pwd")
	typeLine(m, "whoami")
	press(m, tea.KeyUp)
	if got := m.input.String(); got != "whoami" {
		t.Fatalf("up = %q, want whoami", got)
	}
	press(m, tea.KeyUp)
	if got := m.input.String(); got != "pwd" {
		t.Fatalf("up up = %q, want pwd", got)
	}
	press(m, tea.KeyDown)
	press(m, tea.KeyDown)
	if m.input.Len() != 0 {
		t.Fatalf("down past end should clear, got %q", m.input.String())
	}
}

func TestPasswordFlow(t *testing.T) {
	m, _ := newTestModel(t)
	typeLine(m, "su")
	if m.mode != modePassword {
		t.Fatalf("su did not enter password mode")
	}
	typeLine(m, "pbash")
	if m.mode != modePrompt {
		t.Fatalf("password entry did not return to prompt")
	}
	if m.kernel.Session.User != session.Root {
		t.Fatalf("user = %q, want root", m.kernel.Session.User)
	}
	if !strings.Contains(console(m), "Access Granted.") {
		t.Fatalf("missing grant message:\n%s", console(m))
	}
}

func TestPasswordEscapeAbandons(t *testing.T) {
	m, _ := newTestModel(t)
	typeLine(m, "su")
	press(m, tea.KeyEsc)
	if m.mode != modePrompt {
		t.Fatalf("esc did not leave password mode")
	}
	if m.kernel.Session.User != session.Guest {
		t.Fatalf("user = %q, want guest", m.kernel.Session.User)
	}
}

func TestEditorSaveAndExit(t *testing.T) {
	m, fs := newTestModel(t)
	typeLine(m, "nano notes.txt")
	if m.mode != modeEditor {
		t.Fatalf("nano did not enter editor mode")
	}
	for _, r := range "hello" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	press(m, tea.KeyCtrlS)
	if m.editorStatus != "SAVED!" {
		t.Fatalf("status = %q, want SAVED!", m.editorStatus)
	}
	data, err := fs.ReadFile("/home/guest/notes.txt")
	if err != nil || string(data) != "hello" {
		t.Fatalf("saved content = %q, %v", data, err)
	}
	press(m, tea.KeyEsc)
	if m.mode != modePrompt {
		t.Fatalf("esc did not leave editor")
	}
}

func TestReplEvalAndExit(t *testing.T) {
	m, _ := newTestModel(t)
	typeLine(m, "python")
	if m.mode != modeRepl {
		t.Fatalf("python did not enter repl mode")
	}
	typeLine(m, "2+2")
	if !strings.Contains(console(m), ">>> 2+2") || !strings.Contains(console(m), "4") {
		t.Fatalf("repl output missing:\n%s", console(m))
	}
	press(m, tea.KeyEsc)
	if m.mode != modePrompt {
		t.Fatalf("esc did not leave repl")
	}
	if !strings.Contains(console(m), "Exited REPL.") {
		t.Fatalf("missing exit message")
	}
}

func TestCrashEntersRecoveryAndRebootClears(t *testing.T) {
	m, fs := newTestModel(t)
	if err := fs.WriteFile("/bin/app.py", []byte("x")); err != nil {
		t.Fatal(err)
	}
	typeLine(m, "/bin/app.py")
	if m.mode != modeRecovery {
		t.Fatalf("crash did not enter recovery, mode = %d", m.mode)
	}
	if !strings.Contains(console(m), "FATAL") {
		t.Fatalf("missing crash banner:\n%s", console(m))
	}

	typeLine(m, "ls /bin")
	if !strings.Contains(console(m), "app.py") {
		t.Fatalf("recovery ls missing entry:\n%s", console(m))
	}

	typeLine(m, "reboot")
	if m.mode != modePrompt {
		t.Fatalf("reboot did not return to prompt")
	}
	if strings.Contains(console(m), "FATAL") {
		t.Fatalf("reboot did not clear the console")
	}
}

func TestRecoveryEditorEscapeResumesRecovery(t *testing.T) {
	m, fs := newTestModel(t)
	if err := fs.WriteFile("/boot.py", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("/bin/app.py", []byte("x")); err != nil {
		t.Fatal(err)
	}
	typeLine(m, "/bin/app.py")
	if m.mode != modeRecovery {
		t.Fatalf("crash did not enter recovery, mode = %d", m.mode)
	}
	typeLine(m, "nano /boot.py")
	if m.mode != modeEditor {
		t.Fatalf("recovery nano did not open editor")
	}
	press(m, tea.KeyEsc)
	if m.mode != modeRecovery {
		t.Fatalf("editor escape left mode = %d, want recovery", m.mode)
	}

	// An editor opened from the prompt still returns there.
	typeLine(m, "reboot")
	typeLine(m, "nano notes.txt")
	if m.mode != modeEditor {
		t.Fatalf("nano did not open editor")
	}
	press(m, tea.KeyEsc)
	if m.mode != modePrompt {
		t.Fatalf("editor escape left mode = %d, want prompt", m.mode)
	}
}

func TestRecoveryEditorBypassesPolicy(t *testing.T) {
	m, fs := newTestModel(t)
	if err := fs.WriteFile("/boot.py", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("/bin/app.py", []byte("x")); err != nil {
		t.Fatal(err)
	}
	typeLine(m, "/bin/app.py")
	typeLine(m, "nano /boot.py")
	if m.mode != modeEditor {
		t.Fatalf("recovery nano did not open editor")
	}
	press(m, tea.KeyCtrlS)
	if m.editorStatus != "SAVED!" {
		t.Fatalf("status = %q, want SAVED!", m.editorStatus)
	}
}
