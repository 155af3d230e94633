// Package fspath normalizes user-typed paths against the device filesystem
// root. It is the single normalization choke-point: every other package takes
// paths that have already been through Resolve and never re-implements
// traversal logic.
package fspath

import "strings"

// Resolve turns a raw path into an absolute normalized path. A leading "~" is
// replaced with home, a relative path is joined onto cwd, empty and "."
// segments are dropped, and ".." pops the previous segment. ".." at the root
// is discarded rather than escaping above "/". The function is pure: it never
// touches storage, and non-existence of the result is the caller's concern.
func Resolve(raw, cwd, home string) string {
	if raw == "/" {
		return "/"
	}
	if strings.HasPrefix(raw, "~") {
		raw = home + raw[1:]
	}
	target := raw
	if !strings.HasPrefix(target, "/") {
		if cwd == "/" {
			target = "/" + target
		} else {
			target = cwd + "/" + target
		}
	}
	parts := strings.Split(target, "/")
	final := make([]string, 0, len(parts))
	for _, p := range parts {
		switch p {
		case "", ".":
		case "..":
			if len(final) > 0 {
				final = final[:len(final)-1]
			}
		default:
			final = append(final, p)
		}
	}
	return "/" + strings.Join(final, "/")
}

// Join appends a child name to a normalized directory path, handling the "/"
// root without doubling the separator.
func Join(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

// Display abbreviates path with "~" when it is home or lies under home. Used
// only for the prompt; the abbreviated form never feeds back into Resolve
// carrying a different home.
func Display(path, home string) string {
	if home == "" || home == "/" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+"/") {
		return "~" + path[len(home):]
	}
	return path
}

// Under reports whether path equals base or is a descendant of base. Both
// arguments must be normalized. This is the prefix test the Access Controller
// builds on; a plain HasPrefix would let "/home/guestx" pass for
// "/home/guest".
func Under(path, base string) bool {
	if base == "/" {
		return strings.HasPrefix(path, "/")
	}
	return path == base || strings.HasPrefix(path, base+"/")
}

// Split breaks a normalized path into its parent directory and final name.
// Split("/") returns ("/", "").
func Split(path string) (dir, name string) {
	if path == "/" {
		return "/", ""
	}
	i := strings.LastIndex(path, "/")
	if i == 0 {
		return "/", path[1:]
	}
	return path[:i], path[i+1:]
}
