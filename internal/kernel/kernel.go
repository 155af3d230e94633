// Package kernel is the shell's dispatch core: it ties the path resolver,
// access policy, command table, session and config store together and turns a
// submitted line into effects. The interactive front-end feeds it lines and
// honors the requests it returns; the kernel itself never blocks on input.
package kernel

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"cardsh/internal/access"
	"cardsh/internal/command"
	"cardsh/internal/config"
	"cardsh/internal/fspath"
	"cardsh/internal/netio"
	"cardsh/internal/session"
	"cardsh/internal/shellerr"
	"cardsh/internal/vfs"
)

// Version is the release tag reported by --version and the update check.
const Version = "1.3.0"

// Console palette, one style per message class, mirroring the device colors.
// The tui reuses these for the prompt and status surfaces.
var (
	StyleInfo = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	StyleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	StyleErr  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	StyleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	StyleEcho = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	StyleAuth = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
)

// Terminal is the display collaborator: the console body plus a clear
// primitive. Print renders one line, optionally styled.
type Terminal interface {
	Print(text string, style ...lipgloss.Style)
	Clear()
}

// ModuleRunner executes external script files against the shared interpreter
// environment, and evaluates one-off expressions. Run and Eval return the
// captured output; failures are reported by the kernel, never propagated as a
// crash.
type ModuleRunner interface {
	Run(path string, argv []string) (string, error)
	Eval(code string) (string, error)
}

// Device exposes the hardware readings the system-info builtins need.
type Device interface {
	BatteryVoltage() (float64, error)
	FreeRAM() uint64
}

// RequestKind tags an interactive continuation the front-end must drive.
type RequestKind int

const (
	// ReqPassword asks for one masked line; Done receives it.
	ReqPassword RequestKind = iota
	// ReqEditor opens the multi-line editor session.
	ReqEditor
	// ReqRepl enters the nested interpreter line context.
	ReqRepl
	// ReqReboot restarts the whole shell.
	ReqReboot
)

// Request is returned by Exec when a builtin needs the console: a masked
// password line, the file editor, the nested interpreter, or a reboot. The
// primary prompt buffer is suspended untouched while the front-end serves it.
type Request struct {
	Kind   RequestKind
	Prompt string
	Done   func(input string)
	Editor *EditorSession
}

// Options wires a kernel's collaborators.
type Options struct {
	FS         vfs.FS
	Term       Terminal
	Radio      netio.Radio
	Dev        Device
	Runner     ModuleRunner
	ConfigPath string
	Policy     access.Policy
	SearchPath []string
}

// Kernel owns the session, config and command table for one shell.
type Kernel struct {
	FS      vfs.FS
	Term    Terminal
	Radio   netio.Radio
	Dev     Device
	Runner  ModuleRunner
	Session *session.Session
	Config  *config.Document

	ConfigPath string
	Policy     access.Policy

	resolver    *command.Resolver
	builtins    map[string]func(args []string) (*Request, error)
	bootTime    time.Time
	clockOffset time.Duration
	scriptDepth int
}

// Script recursion is bounded so a batch script that invokes itself reports
// an error instead of exhausting the stack.
const maxScriptDepth = 16

// New loads the persisted config, starts a guest session and registers the
// command table.
func New(o Options) *Kernel {
	k := &Kernel{
		FS:         o.FS,
		Term:       o.Term,
		Radio:      o.Radio,
		Dev:        o.Dev,
		Runner:     o.Runner,
		ConfigPath: o.ConfigPath,
		Policy:     o.Policy,
		bootTime:   time.Now(),
	}
	if k.ConfigPath == "" {
		k.ConfigPath = config.Path
	}
	k.Config = config.Load(k.FS, k.ConfigPath)
	k.Session = session.New(k.FS)
	k.resolver = &command.Resolver{
		FS:         k.FS,
		SearchPath: o.SearchPath,
		IsBuiltin:  func(name string) bool { _, ok := k.builtins[name]; return ok },
	}
	k.register()
	return k
}

// Builtins returns the sorted command-table names.
func (k *Kernel) Builtins() []string {
	names := make([]string, 0, len(k.builtins))
	for name := range k.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Complete applies tab completion against the current working directory.
func (k *Kernel) Complete(line string) string {
	return k.resolver.Complete(line, k.Session.CWD, k.Session.Home())
}

// Exec runs one submitted line: blank lines and comments are dropped, the
// first token is resolved, and the outcome dispatched. Failures are rendered
// as short status lines; nothing escapes to the caller except an interactive
// Request.
func (k *Kernel) Exec(line string) *Request {
	req, err := k.exec(line)
	if err != nil {
		k.fail(err)
	}
	return req
}

func (k *Kernel) exec(line string) (*Request, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}
	parts := strings.Fields(line)
	name, args := parts[0], parts[1:]

	res := k.resolver.Resolve(name, k.Session.CWD, k.Session.Home())
	switch res.Kind {
	case command.Builtin:
		return k.builtins[res.Name](args)
	case command.BatchScript:
		return nil, k.runScript(res.Path)
	case command.Module:
		return nil, k.runModule(res.Path, args)
	default:
		return nil, k.evalFallback(line, name)
	}
}

// runScript feeds each non-empty, non-comment line of a batch script back
// into the dispatcher. The script stops at the first failing line and reports
// it; prior lines' effects stand. Interactive builtins need the console and
// cannot run from a script.
func (k *Kernel) runScript(path string) error {
	if k.scriptDepth >= maxScriptDepth {
		return shellerr.IO("script", errors.New("recursion too deep"))
	}
	data, err := k.FS.ReadFile(path)
	if err != nil {
		return shellerr.IO("read script", err)
	}
	k.scriptDepth++
	defer func() { k.scriptDepth-- }()

	for i, raw := range strings.Split(string(data), "\n") {
		l := strings.TrimSpace(raw)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		req, err := k.exec(l)
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		if req != nil {
			return shellerr.Usage(fmt.Sprintf("%s line %d: interactive command in script", path, i+1))
		}
	}
	return nil
}

func (k *Kernel) runModule(path string, args []string) error {
	if k.Runner == nil {
		return shellerr.IO("exec", errors.New("module execution unavailable"))
	}
	out, err := k.Runner.Run(path, args)
	if out != "" {
		k.Term.Print(strings.TrimRight(out, "\n"))
	}
	if err != nil {
		return shellerr.IO("exec "+path, err)
	}
	return nil
}

// evalFallback handles a token that resolved to nothing. With a module runner
// attached the whole line is evaluated as a one-off expression; otherwise the
// unknown command is reported.
func (k *Kernel) evalFallback(line, name string) error {
	if k.Runner == nil {
		return shellerr.NotFound("command %s", name)
	}
	out, err := k.Runner.Eval(line)
	if err != nil {
		return shellerr.NotFound("command %s", name)
	}
	if out != "" {
		k.Term.Print(strings.TrimRight(out, "\n"))
	}
	return nil
}

// fail renders an error as the short colored line the user sees. Usage
// errors print their hint plainly, the way the device does.
func (k *Kernel) fail(err error) {
	switch {
	case errors.Is(err, shellerr.ErrUsage):
		k.Term.Print(strings.TrimPrefix(err.Error(), "usage error: "))
	case errors.Is(err, shellerr.ErrAuth):
		k.Term.Print("Auth Failure", StyleErr)
	case errors.Is(err, shellerr.ErrPermission):
		k.Term.Print(fmt.Sprintf("Permission Denied (%s)", k.Session.User), StyleErr)
	case errors.Is(err, shellerr.ErrNotFound):
		k.Term.Print(err.Error(), StyleErr)
	default:
		k.Term.Print("Err: "+err.Error(), StyleErr)
	}
}

// checkAccess routes a normalized path through the policy for the active
// session.
func (k *Kernel) checkAccess(path string, write bool) error {
	return k.Policy.Check(path, k.Session.IsRoot(), k.Session.Home(), write)
}

// resolve normalizes a user-typed path against the session.
func (k *Kernel) resolve(raw string) string {
	return fspath.Resolve(raw, k.Session.CWD, k.Session.Home())
}
