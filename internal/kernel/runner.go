package kernel

import (
	"errors"
	"os/exec"
)

// ExecRunner implements ModuleRunner with a host interpreter process. The
// device hands module files to its shared interpreter environment; on the
// host the nearest equivalent is spawning the configured interpreter on the
// mapped file. An empty Interpreter disables module execution, which the
// kernel reports per invocation.
type ExecRunner struct {
	// Interpreter is the host binary, e.g. "python3".
	Interpreter string
	// HostPath maps a device path to the backing host path.
	HostPath func(devPath string) string
}

func (r *ExecRunner) Run(path string, argv []string) (string, error) {
	if r.Interpreter == "" {
		return "", errors.New("no module interpreter configured")
	}
	host := path
	if r.HostPath != nil {
		host = r.HostPath(path)
	}
	cmd := exec.Command(r.Interpreter, append([]string{host}, argv...)...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// evalShim reproduces an interactive interpreter line: expressions echo
// their value, statements just run.
const evalShim = `import sys
code = sys.argv[1]
try:
    r = eval(code)
    if r is not None:
        print(r)
except SyntaxError:
    exec(code)
`

func (r *ExecRunner) Eval(code string) (string, error) {
	if r.Interpreter == "" {
		return "", errors.New("no module interpreter configured")
	}
	cmd := exec.Command(r.Interpreter, "-c", evalShim, code)
	out, err := cmd.CombinedOutput()
	return string(out), err
}
