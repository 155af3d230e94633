package kernel

import (
	"cardsh/internal/session"
	"cardsh/internal/shellerr"
)

// cmdSu switches identity after a masked password prompt. The comparison is
// cleartext against the stored credential; the persisted document is shared
// with existing devices and its format cannot change.
func (k *Kernel) cmdSu(args []string) (*Request, error) {
	target := session.Root
	if len(args) > 0 {
		target = args[0]
	}
	if _, ok := k.Config.Users[target]; !ok {
		return nil, shellerr.NotFound("user %s", target)
	}
	if k.Session.User == target {
		k.Term.Print("Already " + target + ".")
		return nil, nil
	}
	k.Term.Print("Password for "+target+": ", StyleAuth)
	return &Request{
		Kind:   ReqPassword,
		Prompt: "Password for " + target,
		Done: func(pwd string) {
			if err := session.Authenticate(k.Config, target, pwd); err != nil {
				k.fail(err)
				return
			}
			// A missing home directory leaves cwd unchanged; the switch
			// itself still succeeds.
			k.Session.SwitchTo(k.FS, target)
			k.Term.Print("Access Granted.", StyleOK)
		},
	}, nil
}

func (k *Kernel) cmdLogout(args []string) (*Request, error) {
	k.Session.Logout(k.FS)
	k.Term.Print("Logged out.", StyleInfo)
	return nil, nil
}

func (k *Kernel) cmdPasswd(args []string) (*Request, error) {
	user := k.Session.User
	k.Term.Print("New Password ("+user+"): ", StyleInfo)
	return &Request{
		Kind:   ReqPassword,
		Prompt: "New Password (" + user + ")",
		Done: func(pwd string) {
			k.Config.Users[user] = pwd
			if k.Config.Save(k.FS, k.ConfigPath) {
				k.Term.Print("Password updated.", StyleOK)
			} else {
				k.Term.Print("Save Failed.", StyleErr)
			}
		},
	}, nil
}

// cmdAdduser is root-only. The credential write and the home-directory
// creation are independent: a failed mkdir reports partial success, it never
// rolls back the credential.
func (k *Kernel) cmdAdduser(args []string) (*Request, error) {
	if !k.Session.IsRoot() {
		return nil, shellerr.Permission("root required")
	}
	if len(args) == 0 {
		return nil, shellerr.Usage("Usage: adduser <name>")
	}
	name := args[0]
	if _, ok := k.Config.Users[name]; ok {
		k.Term.Print("User exists.")
		return nil, nil
	}
	k.Term.Print("Set password for "+name+": ", StyleInfo)
	return &Request{
		Kind:   ReqPassword,
		Prompt: "Set password for " + name,
		Done: func(pwd string) {
			k.Config.Users[name] = pwd
			if !k.Config.Save(k.FS, k.ConfigPath) {
				k.Term.Print("Save Failed", StyleErr)
				return
			}
			if err := k.FS.Mkdir(k.Session.HomeFor(name)); err != nil {
				k.Term.Print("Created (No Home Dir)", StyleWarn)
				return
			}
			k.Term.Print("User "+name+" created.", StyleOK)
		},
	}, nil
}
