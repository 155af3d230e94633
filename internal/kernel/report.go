package kernel

import (
	"fmt"
	"sort"
	"strings"
)

// Report renders the system diagnostic text: identity, storage, credentials
// and command surface in one block. Serves both the sysreport builtin and the
// headless --report mode.
func (k *Kernel) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cardsh %s\n", Version)
	fmt.Fprintf(&b, "User:     %s\n", k.Session.User)
	fmt.Fprintf(&b, "CWD:      %s\n", k.Session.CWD)
	fmt.Fprintf(&b, "Home:     %s\n", k.Session.Home())
	fmt.Fprintf(&b, "ReadOnly: %v\n", k.FS.ReadOnly())

	if st, err := k.FS.Statvfs("/"); err == nil {
		total := st.TotalBlocks * st.BlockSize
		free := st.FreeBlocks * st.BlockSize
		fmt.Fprintf(&b, "Disk:     %s total, %s free\n", fmtBytes(total), fmtBytes(free))
	}

	users := make([]string, 0, len(k.Config.Users))
	for u := range k.Config.Users {
		users = append(users, u)
	}
	sort.Strings(users)
	fmt.Fprintf(&b, "Users:    %s\n", strings.Join(users, " "))
	fmt.Fprintf(&b, "Networks: %d remembered\n", len(k.Config.WiFi))
	fmt.Fprintf(&b, "Path:     %s\n", strings.Join(k.resolver.SearchPath, " "))
	fmt.Fprintf(&b, "Commands: %s\n", strings.Join(k.Builtins(), " "))
	return strings.TrimRight(b.String(), "\n")
}
