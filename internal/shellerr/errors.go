// Package shellerr defines the failure categories the shell reports to the
// user. Every builtin resolves its own failures down to one of these before
// printing; nothing below the UI distinguishes finer-grained causes.
package shellerr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers absent paths, commands and users.
	ErrNotFound = errors.New("not found")
	// ErrPermission is an Access Controller deny.
	ErrPermission = errors.New("permission denied")
	// ErrIO covers storage and network operation failures.
	ErrIO = errors.New("io failure")
	// ErrAuth is a credential mismatch.
	ErrAuth = errors.New("auth failure")
	// ErrUsage means the arguments were malformed.
	ErrUsage = errors.New("usage error")
)

// NotFound wraps ErrNotFound with a short subject, e.g. "user foo".
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Permission wraps ErrPermission with the deny reason.
func Permission(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrPermission, fmt.Sprintf(format, args...))
}

// IO wraps a storage or network error. The cause is kept in the message only;
// callers match on ErrIO, not on the underlying error.
func IO(op string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrIO, op, cause)
}

// Usage wraps ErrUsage with a usage line.
func Usage(line string) error {
	return fmt.Errorf("%w: %s", ErrUsage, line)
}
