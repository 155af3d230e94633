// Package access is the shell's single privilege boundary. Every command that
// mutates storage, and every open-for-write, routes a normalized path through
// Policy.Check before touching the filesystem.
package access

import (
	"cardsh/internal/fspath"
	"cardsh/internal/shellerr"
)

// Policy is the access table for one device. Two historical variants of the
// write rule exist in the field: home-directory-only, and home-directory or
// external mount. ExternalWrite selects between them; the shipped default
// allows the external mount since the SD card is mounted expressly for user
// data. Pending product sign-off either way.
type Policy struct {
	// Protected paths are denied to non-root identities for both read and
	// write; they are the files that constitute the running system.
	Protected []string
	// ExternalMount is the mount point of removable storage, e.g. "/sd".
	ExternalMount string
	// ExternalWrite extends non-root write access to the external mount.
	ExternalWrite bool
}

// Check decides whether the identity described by (isRoot, home) may touch
// path. Write selects the mutation rules; reads are otherwise unrestricted.
// path must already be normalized; Check performs prefix tests only.
func (p Policy) Check(path string, isRoot bool, home string, write bool) error {
	if isRoot {
		return nil
	}
	for _, sys := range p.Protected {
		if fspath.Under(path, sys) {
			return shellerr.Permission("system path %s", path)
		}
	}
	if !write {
		return nil
	}
	if home != "" && fspath.Under(path, home) {
		return nil
	}
	if p.ExternalWrite && p.ExternalMount != "" && fspath.Under(path, p.ExternalMount) {
		return nil
	}
	return shellerr.Permission("write outside home")
}

// DefaultPolicy matches the device layout: the interpreter entry points, the
// library tree, the credential document and root's home are system paths.
func DefaultPolicy() Policy {
	return Policy{
		Protected:     []string{"/code.py", "/boot.py", "/lib", "/config.json", "/home/root"},
		ExternalMount: "/sd",
		ExternalWrite: true,
	}
}
