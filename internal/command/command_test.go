package command

import (
	"testing"

	"cardsh/internal/vfs"
)

const (
	cwd  = "/home/guest"
	home = "/home/guest"
)

func newResolver(t *testing.T, builtins ...string) (*Resolver, *vfs.DirFS) {
	t.Helper()
	fs := vfs.NewDirFS(t.TempDir())
	for _, d := range []string{"/home", "/home/guest", "/bin", "/sd", "/sd/bin"} {
		if err := fs.Mkdir(d); err != nil {
			t.Fatal(err)
		}
	}
	set := map[string]bool{}
	for _, b := range builtins {
		set[b] = true
	}
	return &Resolver{
		FS:         fs,
		SearchPath: []string{"/bin", "/sd/bin"},
		IsBuiltin:  func(name string) bool { return set[name] },
	}, fs
}

func TestBuiltinShadowsFiles(t *testing.T) {
	r, fs := newResolver(t, "ls")
	// Even with a script of the same name present, the builtin wins.
	if err := fs.WriteFile("/home/guest/ls.pbash", []byte("echo no")); err != nil {
		t.Fatal(err)
	}
	got := r.Resolve("ls", cwd, home)
	if got.Kind != Builtin || got.Name != "ls" {
		t.Errorf("Resolve(ls) = %+v", got)
	}
}

func TestBatchScriptBeforePathSearch(t *testing.T) {
	r, fs := newResolver(t)
	if err := fs.WriteFile("/home/guest/build.pbash", []byte("echo hi")); err != nil {
		t.Fatal(err)
	}
	// A module of the same name further down the search path must lose.
	if err := fs.WriteFile("/bin/build.py", []byte("")); err != nil {
		t.Fatal(err)
	}
	got := r.Resolve("build", cwd, home)
	if got.Kind != BatchScript || got.Path != "/home/guest/build.pbash" {
		t.Errorf("Resolve(build) = %+v", got)
	}
}

func TestExplicitBatchExtension(t *testing.T) {
	r, fs := newResolver(t)
	if err := fs.WriteFile("/home/guest/job.pbash", nil); err != nil {
		t.Fatal(err)
	}
	got := r.Resolve("job.pbash", cwd, home)
	if got.Kind != BatchScript || got.Path != "/home/guest/job.pbash" {
		t.Errorf("Resolve(job.pbash) = %+v", got)
	}
}

func TestLocalModule(t *testing.T) {
	r, fs := newResolver(t)
	if err := fs.WriteFile("/home/guest/tool.py", nil); err != nil {
		t.Fatal(err)
	}
	for _, token := range []string{"tool", "tool.py"} {
		got := r.Resolve(token, cwd, home)
		if got.Kind != Module || got.Path != "/home/guest/tool.py" {
			t.Errorf("Resolve(%s) = %+v", token, got)
		}
	}
}

func TestSearchPathOrder(t *testing.T) {
	r, fs := newResolver(t)
	if err := fs.WriteFile("/bin/probe.py", nil); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("/sd/bin/probe.py", nil); err != nil {
		t.Fatal(err)
	}
	got := r.Resolve("probe", cwd, home)
	if got.Kind != Module || got.Path != "/bin/probe.py" {
		t.Errorf("Resolve(probe) = %+v, want first search-path hit", got)
	}
}

func TestPathTokens(t *testing.T) {
	r, fs := newResolver(t)
	if err := fs.WriteFile("/bin/x.pbash", nil); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteFile("/bin/y.py", nil); err != nil {
		t.Fatal(err)
	}
	if got := r.Resolve("/bin/x.pbash", cwd, home); got.Kind != BatchScript {
		t.Errorf("Resolve(/bin/x.pbash) = %+v", got)
	}
	if got := r.Resolve("../../bin/y.py", cwd, home); got.Kind != Module || got.Path != "/bin/y.py" {
		t.Errorf("Resolve(../../bin/y.py) = %+v", got)
	}
	// A path token that names nothing does not fall through to PATH search.
	if got := r.Resolve("/bin/ghost", cwd, home); got.Kind != Unrecognized {
		t.Errorf("Resolve(/bin/ghost) = %+v", got)
	}
}

func TestUnrecognized(t *testing.T) {
	r, _ := newResolver(t)
	if got := r.Resolve("frobnicate", cwd, home); got.Kind != Unrecognized {
		t.Errorf("Resolve(frobnicate) = %+v", got)
	}
}

func TestCompletePicksSmallestMatch(t *testing.T) {
	r, fs := newResolver(t)
	for _, f := range []string{"notes.txt", "notable.md", "zebra"} {
		if err := fs.WriteFile("/home/guest/"+f, nil); err != nil {
			t.Fatal(err)
		}
	}
	if got := r.Complete("cat not", cwd, home); got != "cat notable.md" {
		t.Errorf("Complete = %q", got)
	}
}

func TestCompleteWithDirectoryPart(t *testing.T) {
	r, fs := newResolver(t)
	if err := fs.WriteFile("/bin/probe.py", nil); err != nil {
		t.Fatal(err)
	}
	if got := r.Complete("cat /bin/pr", cwd, home); got != "cat /bin/probe.py" {
		t.Errorf("Complete = %q", got)
	}
}

func TestCompleteNoMatchReturnsInput(t *testing.T) {
	r, _ := newResolver(t)
	if got := r.Complete("cat zzz", cwd, home); got != "cat zzz" {
		t.Errorf("Complete = %q", got)
	}
	if got := r.Complete("cat /missing/x", cwd, home); got != "cat /missing/x" {
		t.Errorf("Complete with unlistable dir = %q", got)
	}
}
