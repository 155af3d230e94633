package access

import (
	"errors"
	"testing"

	"cardsh/internal/shellerr"
)

const guestHome = "/home/guest"

func TestRootAlwaysAllowed(t *testing.T) {
	p := DefaultPolicy()
	for _, path := range []string{"/code.py", "/lib/secret", "/home/guest/x", "/sd/a"} {
		for _, write := range []bool{false, true} {
			if err := p.Check(path, true, "/home/root", write); err != nil {
				t.Errorf("root denied on %s (write=%v): %v", path, write, err)
			}
		}
	}
}

func TestProtectedPathsDeniedEvenForRead(t *testing.T) {
	p := DefaultPolicy()
	for _, path := range []string{"/code.py", "/boot.py", "/lib", "/lib/cardterm.py", "/config.json", "/home/root", "/home/root/secret"} {
		if err := p.Check(path, false, guestHome, false); !errors.Is(err, shellerr.ErrPermission) {
			t.Errorf("read of %s: got %v, want ErrPermission", path, err)
		}
	}
	// Sibling names that merely share a prefix are not protected.
	if err := p.Check("/library", false, guestHome, false); err != nil {
		t.Errorf("read of /library: %v", err)
	}
}

func TestGuestWriteRules(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		path  string
		allow bool
	}{
		{"/home/guest/notes.txt", true},
		{"/home/guest", true},
		{"/home/guest/a/b/c", true},
		{"/home/guestx/notes.txt", false},
		{"/home/root/secret", false},
		{"/etc/x", false},
		{"/sd/save.dat", true},
		{"/sd", true},
	}
	for _, tc := range tests {
		err := p.Check(tc.path, false, guestHome, true)
		if tc.allow && err != nil {
			t.Errorf("write %s: denied: %v", tc.path, err)
		}
		if !tc.allow && !errors.Is(err, shellerr.ErrPermission) {
			t.Errorf("write %s: got %v, want ErrPermission", tc.path, err)
		}
	}
}

func TestHomeOnlyVariant(t *testing.T) {
	p := DefaultPolicy()
	p.ExternalWrite = false
	if err := p.Check("/sd/save.dat", false, guestHome, true); !errors.Is(err, shellerr.ErrPermission) {
		t.Errorf("home-only policy allowed external write: %v", err)
	}
	if err := p.Check("/home/guest/x", false, guestHome, true); err != nil {
		t.Errorf("home-only policy denied home write: %v", err)
	}
}

func TestReadOutsideHomeAllowed(t *testing.T) {
	p := DefaultPolicy()
	for _, path := range []string{"/bin/tool.py", "/etc", "/home/other"} {
		if err := p.Check(path, false, guestHome, false); err != nil {
			t.Errorf("read %s denied: %v", path, err)
		}
	}
}
