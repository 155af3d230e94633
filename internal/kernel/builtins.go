package kernel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"cardsh/internal/fspath"
	"cardsh/internal/shellerr"
	"cardsh/internal/vfs"
)

func (k *Kernel) register() {
	k.builtins = map[string]func(args []string) (*Request, error){
		"ls":       k.cmdLs,
		"cd":       k.cmdCd,
		"pwd":      k.cmdPwd,
		"cat":      k.cmdCat,
		"cp":       k.cmdCp,
		"mv":       k.cmdMv,
		"rm":       k.cmdRm,
		"mkdir":    k.cmdMkdir,
		"touch":    k.cmdTouch,
		"nano":     k.cmdNano,
		"echo":     k.cmdEcho,
		"sleep":    k.cmdSleep,
		"help":     k.cmdHelp,
		"clear":    k.cmdClear,
		"whoami":   k.cmdWhoami,
		"su":       k.cmdSu,
		"login":    k.cmdSu,
		"logout":   k.cmdLogout,
		"passwd":   k.cmdPasswd,
		"adduser":  k.cmdAdduser,
		"scan":     k.cmdScan,
		"connect":  k.cmdConnect,
		"wget":     k.cmdWget,
		"ifconfig": k.cmdIfconfig,
		"ntp":      k.cmdNtp,
		"time":     k.cmdTime,
		"date":     k.cmdTime,
		"disk":     k.cmdDisk,
		"df":       k.cmdDisk,
		"battery":  k.cmdBattery,
		"bat":      k.cmdBattery,
		"free":     k.cmdFree,
		"python":   k.cmdPython,
		"pbash":    k.cmdPbash,
		"reboot":   k.cmdReboot,
		"sysreport": func(args []string) (*Request, error) {
			k.Term.Print(k.Report())
			return nil, nil
		},
	}
}

func (k *Kernel) cmdLs(args []string) (*Request, error) {
	target := k.Session.CWD
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			target = k.resolve(a)
		}
	}
	if err := k.checkAccess(target, false); err != nil {
		return nil, err
	}
	items, err := k.FS.List(target)
	if err != nil {
		return nil, shellerr.NotFound("%s", target)
	}
	sort.Strings(items)
	var dirs, files []string
	for _, item := range items {
		if vfs.IsDir(k.FS, fspath.Join(target, item)) {
			dirs = append(dirs, item+"/")
		} else {
			files = append(files, item)
		}
	}
	if len(dirs) > 0 {
		k.Term.Print(strings.Join(dirs, "  "), StyleInfo)
	}
	if len(files) > 0 {
		k.Term.Print(strings.Join(files, "  "), StyleOK)
	}
	return nil, nil
}

func (k *Kernel) cmdCd(args []string) (*Request, error) {
	target := k.Session.Home()
	if len(args) > 0 {
		target = k.resolve(args[0])
	}
	if err := k.checkAccess(target, false); err != nil {
		return nil, err
	}
	return nil, k.Session.ChangeDir(k.FS, target)
}

func (k *Kernel) cmdPwd(args []string) (*Request, error) {
	k.Term.Print(k.Session.CWD)
	return nil, nil
}

func (k *Kernel) cmdCat(args []string) (*Request, error) {
	if len(args) == 0 {
		return nil, shellerr.Usage("Usage: cat <file>")
	}
	p := k.resolve(args[0])
	if err := k.checkAccess(p, false); err != nil {
		return nil, err
	}
	data, err := k.FS.ReadFile(p)
	if err != nil {
		return nil, shellerr.IO("read", err)
	}
	k.Term.Print(strings.TrimRight(string(data), "\n"))
	return nil, nil
}

func (k *Kernel) cmdCp(args []string) (*Request, error) {
	if len(args) < 2 {
		return nil, shellerr.Usage("Usage: cp <src> <dst>")
	}
	src, dst := k.resolve(args[0]), k.resolve(args[1])
	if err := k.checkAccess(src, false); err != nil {
		return nil, err
	}
	if err := k.checkAccess(dst, true); err != nil {
		return nil, err
	}
	data, err := k.FS.ReadFile(src)
	if err != nil {
		return nil, shellerr.IO("read", err)
	}
	if err := k.FS.WriteFile(dst, data); err != nil {
		return nil, shellerr.IO("write", err)
	}
	k.Term.Print("Copied")
	return nil, nil
}

func (k *Kernel) cmdMv(args []string) (*Request, error) {
	if len(args) < 2 {
		return nil, shellerr.Usage("Usage: mv <src> <dst>")
	}
	src, dst := k.resolve(args[0]), k.resolve(args[1])
	if err := k.checkAccess(src, true); err != nil {
		return nil, err
	}
	if err := k.checkAccess(dst, true); err != nil {
		return nil, err
	}
	if err := k.FS.Rename(src, dst); err != nil {
		return nil, shellerr.IO("rename", err)
	}
	k.Term.Print("Moved")
	return nil, nil
}

func (k *Kernel) cmdRm(args []string) (*Request, error) {
	recursive := false
	var targets []string
	for _, a := range args {
		if a == "-rf" || a == "-r" {
			recursive = true
		} else {
			targets = append(targets, a)
		}
	}
	if len(targets) == 0 {
		return nil, shellerr.Usage("Usage: rm [-rf] <path>")
	}
	p := k.resolve(targets[0])
	if err := k.checkAccess(p, true); err != nil {
		return nil, err
	}
	if vfs.IsDir(k.FS, p) {
		if !recursive {
			if err := k.FS.Rmdir(p); err != nil {
				return nil, shellerr.Usage("Use -rf")
			}
			k.Term.Print("Deleted dir " + targets[0])
			return nil, nil
		}
		k.Term.Print("Del dir "+targets[0]+"...", StyleWarn)
		if err := k.removeTree(p); err != nil {
			return nil, shellerr.IO("rm", err)
		}
		k.Term.Print("Deleted.")
		return nil, nil
	}
	if err := k.FS.Remove(p); err != nil {
		return nil, shellerr.IO("rm", err)
	}
	k.Term.Print("Deleted " + targets[0])
	return nil, nil
}

func (k *Kernel) removeTree(path string) error {
	if vfs.IsDir(k.FS, path) {
		children, err := k.FS.List(path)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := k.removeTree(fspath.Join(path, child)); err != nil {
				return err
			}
		}
		return k.FS.Rmdir(path)
	}
	return k.FS.Remove(path)
}

func (k *Kernel) cmdMkdir(args []string) (*Request, error) {
	if len(args) == 0 {
		return nil, shellerr.Usage("Usage: mkdir <dir>")
	}
	p := k.resolve(args[0])
	if err := k.checkAccess(p, true); err != nil {
		return nil, err
	}
	if err := k.FS.Mkdir(p); err != nil {
		return nil, shellerr.IO("mkdir", err)
	}
	k.Term.Print("Created " + args[0])
	return nil, nil
}

func (k *Kernel) cmdTouch(args []string) (*Request, error) {
	if len(args) == 0 {
		return nil, shellerr.Usage("Usage: touch <file>")
	}
	p := k.resolve(args[0])
	if err := k.checkAccess(p, true); err != nil {
		return nil, err
	}
	if err := k.FS.Touch(p); err != nil {
		return nil, shellerr.IO("touch", err)
	}
	k.Term.Print("Touched " + args[0])
	return nil, nil
}

func (k *Kernel) cmdEcho(args []string) (*Request, error) {
	k.Term.Print(strings.Join(args, " "))
	return nil, nil
}

// cmdSleep blocks the whole interface for the given seconds. Single
// foreground task: that is the documented concurrency model, not a bug.
func (k *Kernel) cmdSleep(args []string) (*Request, error) {
	if len(args) == 0 {
		return nil, nil
	}
	sec, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return nil, nil
	}
	time.Sleep(time.Duration(sec * float64(time.Second)))
	return nil, nil
}

func (k *Kernel) cmdHelp(args []string) (*Request, error) {
	k.Term.Print("Available Commands:", StyleInfo)
	k.Term.Print(strings.Join(k.Builtins(), " "))
	return nil, nil
}

func (k *Kernel) cmdClear(args []string) (*Request, error) {
	k.Term.Clear()
	return nil, nil
}

func (k *Kernel) cmdWhoami(args []string) (*Request, error) {
	k.Term.Print(k.Session.User)
	return nil, nil
}

func (k *Kernel) cmdReboot(args []string) (*Request, error) {
	return &Request{Kind: ReqReboot}, nil
}

func (k *Kernel) cmdFree(args []string) (*Request, error) {
	k.Term.Print(fmt.Sprintf("RAM: %d", k.Dev.FreeRAM()))
	return nil, nil
}

func (k *Kernel) cmdBattery(args []string) (*Request, error) {
	voltage, err := k.Dev.BatteryVoltage()
	if err != nil {
		return nil, shellerr.IO("battery", err)
	}
	percent := (voltage - 3.2) / (4.2 - 3.2) * 100
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	style := StyleOK
	if percent < 50 {
		style = StyleWarn
	}
	if percent < 20 {
		style = StyleErr
	}
	k.Term.Print(fmt.Sprintf("Bat: %.0f%% (%.2fV)", percent, voltage), style)
	return nil, nil
}

func (k *Kernel) cmdDisk(args []string) (*Request, error) {
	st, err := k.FS.Statvfs(k.Session.CWD)
	if err != nil {
		return nil, shellerr.IO("disk", err)
	}
	total := st.TotalBlocks * st.BlockSize
	free := st.FreeBlocks * st.BlockSize
	used := total - free
	percent := 0.0
	if total > 0 {
		percent = float64(used) / float64(total) * 100
	}
	style := StyleOK
	if percent > 80 {
		style = StyleWarn
	}
	if percent > 95 {
		style = StyleErr
	}
	k.Term.Print("Path: "+k.Session.CWD, StyleInfo)
	k.Term.Print("Size: " + fmtBytes(total))
	k.Term.Print(fmt.Sprintf("Used: %s (%.0f%%)", fmtBytes(used), percent), style)
	k.Term.Print("Free: "+fmtBytes(free), StyleOK)
	return nil, nil
}

func fmtBytes(b int64) string {
	switch {
	case b >= 1024*1024*1024:
		return fmt.Sprintf("%.1f GB", float64(b)/(1024*1024*1024))
	case b >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(b)/(1024*1024))
	case b >= 1024:
		return fmt.Sprintf("%.1f KB", float64(b)/1024)
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func (k *Kernel) cmdTime(args []string) (*Request, error) {
	now := time.Now().Add(k.clockOffset)
	up := time.Since(k.bootTime)
	hours := int(up.Hours())
	mins := int(up.Minutes()) % 60
	secs := int(up.Seconds()) % 60
	k.Term.Print("Time: "+now.Format("15:04:05 (1/2/2006)"), StyleInfo)
	k.Term.Print(fmt.Sprintf("Up:   %dh %dm %ds", hours, mins, secs), StyleOK)
	return nil, nil
}

func (k *Kernel) cmdPbash(args []string) (*Request, error) {
	if len(args) == 0 {
		return nil, shellerr.Usage("Usage: pbash <file>")
	}
	return nil, k.runScript(k.resolve(args[0]))
}

// RunScript runs one batch script without going through line tokenization,
// so the path may contain spaces. Failures are rendered on the terminal like
// any dispatched line and also returned for the caller's exit status.
func (k *Kernel) RunScript(raw string) error {
	err := k.runScript(k.resolve(raw))
	if err != nil {
		k.fail(err)
	}
	return err
}

func (k *Kernel) cmdPython(args []string) (*Request, error) {
	k.Term.Print("Python REPL (ESC to exit)", StyleOK)
	return &Request{Kind: ReqRepl}, nil
}

// Eval runs one nested-interpreter line through the module collaborator.
func (k *Kernel) Eval(code string) {
	if k.Runner == nil {
		k.Term.Print("Err: no interpreter attached", StyleErr)
		return
	}
	out, err := k.Runner.Eval(code)
	if err != nil {
		k.Term.Print("Err: "+err.Error(), StyleErr)
		return
	}
	if out != "" {
		k.Term.Print(strings.TrimRight(out, "\n"))
	}
}
