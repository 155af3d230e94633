// Package session holds the shell's identity and working-directory state and
// the identity-switch rules. One Session value lives for the process lifetime
// and is threaded through every command handler; nothing here is a global.
package session

import (
	"cardsh/internal/config"
	"cardsh/internal/fspath"
	"cardsh/internal/shellerr"
	"cardsh/internal/vfs"
)

// Well-known identities. Any other user name is a named user created with
// adduser.
const (
	Root  = "root"
	Guest = "guest"
)

// Default home directories.
const (
	RootHome  = "/home/root"
	GuestHome = "/home/guest"
)

// Session is the active identity and its working directory. CWD is always a
// normalized absolute path that existed when it was set; mutations that fail
// retain the prior value.
type Session struct {
	User      string
	CWD       string
	RootHome  string
	GuestHome string
}

// New starts a guest session, placed in the guest home when it exists and at
// "/" otherwise.
func New(fs vfs.FS) *Session {
	s := &Session{User: Guest, CWD: "/", RootHome: RootHome, GuestHome: GuestHome}
	if vfs.IsDir(fs, s.GuestHome) {
		s.CWD = s.GuestHome
	}
	return s
}

// IsRoot reports whether the session runs as root.
func (s *Session) IsRoot() bool { return s.User == Root }

// Home returns the active identity's home directory.
func (s *Session) Home() string { return s.HomeFor(s.User) }

// HomeFor returns the home directory of any identity.
func (s *Session) HomeFor(user string) string {
	switch user {
	case Root:
		return s.RootHome
	case Guest:
		return s.GuestHome
	default:
		return "/home/" + user
	}
}

// Prompt returns the prompt sigil for the active identity.
func (s *Session) Prompt() string {
	if s.IsRoot() {
		return "#"
	}
	return "$"
}

// DisplayCWD abbreviates the working directory against the active home for
// the prompt line.
func (s *Session) DisplayCWD() string {
	return fspath.Display(s.CWD, s.Home())
}

// ChangeDir moves the session to target, a normalized path. The mutation is
// rejected and CWD retained unless target exists and is a directory.
func (s *Session) ChangeDir(fs vfs.FS, target string) error {
	info, err := fs.Stat(target)
	if err != nil || !info.IsDir {
		return shellerr.NotFound("no such directory: %s", target)
	}
	s.CWD = target
	return nil
}

// Authenticate checks a cleartext password against the stored credential for
// user. It does not switch the session.
func Authenticate(cfg *config.Document, user, password string) error {
	stored, ok := cfg.Users[user]
	if !ok {
		return shellerr.NotFound("user %s", user)
	}
	if password != stored {
		return shellerr.ErrAuth
	}
	return nil
}

// SwitchTo adopts the target identity and attempts to move to its home
// directory. A missing home leaves CWD unchanged; the switch itself still
// succeeds.
func (s *Session) SwitchTo(fs vfs.FS, user string) {
	s.User = user
	home := s.HomeFor(user)
	if vfs.IsDir(fs, home) {
		s.CWD = home
	}
}

// Logout always returns to the guest identity and home.
func (s *Session) Logout(fs vfs.FS) {
	s.SwitchTo(fs, Guest)
}
