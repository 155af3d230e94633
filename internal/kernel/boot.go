package kernel

import (
	"cardsh/internal/vfs"
)

// Boot brings the filesystem to its expected shape and runs the auto-boot
// script. Directory creation is best-effort: a write-protected medium leaves
// the layout as found and the shell still comes up.
func (k *Kernel) Boot() {
	k.Term.Print("cardsh "+Version+" (type 'help')", StyleInfo)
	for _, dir := range []string{"/home", k.Session.GuestHome, k.Session.RootHome} {
		if !vfs.Exists(k.FS, dir) {
			_ = k.FS.Mkdir(dir)
		}
	}
	if vfs.IsDir(k.FS, k.Session.GuestHome) && k.Session.CWD == "/" {
		k.Session.CWD = k.Session.GuestHome
	}

	switch {
	case vfs.Exists(k.FS, "/boot.pbash"):
		k.Term.Print("Booting (Internal)...", StyleOK)
		if err := k.runScript("/boot.pbash"); err != nil {
			k.fail(err)
		}
	case vfs.Exists(k.FS, "/sd/boot.pbash"):
		k.Term.Print("Booting (SD)...", StyleOK)
		if err := k.runScript("/sd/boot.pbash"); err != nil {
			k.fail(err)
		}
	}
}
