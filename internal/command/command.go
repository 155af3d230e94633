// Package command maps a typed token to what should run: a built-in handler,
// a batch script, or an external module file, found through a fixed search
// order. Built-ins always shadow files of the same name.
package command

import (
	"sort"
	"strings"

	"cardsh/internal/fspath"
	"cardsh/internal/vfs"
)

// File extensions the resolver knows. A batch script is a file of shell lines
// run through the top-level dispatcher; a module is handed to the external
// execution collaborator.
const (
	BatchExt  = ".pbash"
	ModuleExt = ".py"
)

// Kind tags a resolution outcome.
type Kind int

const (
	// Builtin is a native handler in the command table.
	Builtin Kind = iota
	// BatchScript is a .pbash file interpreted line by line.
	BatchScript
	// Module is a file for the module-execution collaborator.
	Module
	// Unrecognized means nothing matched; the dispatcher decides what a
	// stray token means (it never panics the shell).
	Unrecognized
)

// Resolved is the outcome of command resolution, consumed once per
// invocation. Path is set for BatchScript and Module.
type Resolved struct {
	Kind Kind
	Name string
	Path string
}

// Resolver implements the search order over a filesystem and a system path
// list.
type Resolver struct {
	FS         vfs.FS
	SearchPath []string
	IsBuiltin  func(name string) bool
}

// Resolve finds what token names. The search order is fixed and documented:
//
//  1. the built-in table;
//  2. a token containing "/" is resolved as a path: an existing .pbash file
//     is a batch script, any other existing file is a module, best effort;
//  3. in the current directory: "<token>.pbash" (or the token itself when it
//     already carries the extension), then "<token>.py" likewise;
//  4. "<token>.py" in each search-path directory, first hit wins;
//  5. Unrecognized.
func (r *Resolver) Resolve(token, cwd, home string) Resolved {
	if r.IsBuiltin != nil && r.IsBuiltin(token) {
		return Resolved{Kind: Builtin, Name: token}
	}

	if strings.Contains(token, "/") {
		p := fspath.Resolve(token, cwd, home)
		if vfs.Exists(r.FS, p) {
			if strings.HasSuffix(p, BatchExt) {
				return Resolved{Kind: BatchScript, Name: token, Path: p}
			}
			return Resolved{Kind: Module, Name: token, Path: p}
		}
		return Resolved{Kind: Unrecognized, Name: token}
	}

	batch := token
	if !strings.HasSuffix(batch, BatchExt) {
		batch = token + BatchExt
	}
	if p := fspath.Resolve(batch, cwd, home); vfs.Exists(r.FS, p) {
		return Resolved{Kind: BatchScript, Name: token, Path: p}
	}

	mod := token
	if !strings.HasSuffix(mod, ModuleExt) {
		mod = token + ModuleExt
	}
	if p := fspath.Resolve(mod, cwd, home); vfs.Exists(r.FS, p) {
		return Resolved{Kind: Module, Name: token, Path: p}
	}

	clean := strings.TrimSuffix(token, ModuleExt)
	for _, dir := range r.SearchPath {
		p := fspath.Join(dir, clean+ModuleExt)
		if vfs.Exists(r.FS, p) {
			return Resolved{Kind: Module, Name: token, Path: p}
		}
	}

	return Resolved{Kind: Unrecognized, Name: token}
}

// Complete applies tab completion to a partial line: the last
// whitespace-delimited token is split into a directory part and a name
// prefix, the directory is listed, and the lexicographically smallest
// matching entry replaces the prefix. The line comes back unchanged when the
// directory cannot be listed or nothing matches.
func (r *Resolver) Complete(line, cwd, home string) string {
	parts := strings.Split(line, " ")
	target := parts[len(parts)-1]

	searchDir := cwd
	prefix := target
	parent := ""
	if i := strings.LastIndex(target, "/"); i >= 0 {
		parent = target[:i+1]
		prefix = target[i+1:]
		searchDir = fspath.Resolve(parent, cwd, home)
	}

	entries, err := r.FS.List(searchDir)
	if err != nil {
		return line
	}
	var candidates []string
	for _, name := range entries {
		if strings.HasPrefix(name, prefix) {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return line
	}
	sort.Strings(candidates)
	parts[len(parts)-1] = parent + candidates[0]
	return strings.Join(parts, " ")
}
