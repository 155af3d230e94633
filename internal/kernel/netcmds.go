package kernel

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"cardsh/internal/netio"
	"cardsh/internal/shellerr"
)

func (k *Kernel) cmdScan(args []string) (*Request, error) {
	k.Term.Print("Scanning...", StyleInfo)
	nets, err := k.Radio.Scan()
	if err != nil {
		k.Term.Print("Scan Failed", StyleErr)
		return nil, nil
	}
	if len(nets) > 5 {
		nets = nets[:5]
	}
	for _, n := range nets {
		k.Term.Print(fmt.Sprintf("%s (%d)", n.SSID, n.RSSI))
	}
	return nil, nil
}

// cmdConnect associates by credential. A password given on the line wins;
// otherwise the remembered secret for the network is used. New or changed
// secrets are persisted, and a failed save is surfaced, not swallowed.
func (k *Kernel) cmdConnect(args []string) (*Request, error) {
	if len(args) == 0 {
		return nil, shellerr.Usage("Usage: connect <ssid> [pass]")
	}
	ssid := args[0]
	var pwd string
	switch {
	case len(args) > 1:
		pwd = args[1]
	default:
		saved, ok := k.Config.WiFi[ssid]
		if !ok {
			k.Term.Print("Password required.", StyleErr)
			return nil, nil
		}
		pwd = saved
		k.Term.Print("Found saved pass for "+ssid, StyleInfo)
	}

	k.Term.Print("Connecting to "+ssid+"...", StyleInfo)
	if err := k.Radio.Connect(ssid, pwd); err != nil {
		return nil, shellerr.IO("connect", err)
	}
	k.Term.Print("IP: "+k.Radio.IPv4(), StyleOK)

	if old, ok := k.Config.WiFi[ssid]; !ok || old != pwd {
		k.Config.WiFi[ssid] = pwd
		if k.Config.Save(k.FS, k.ConfigPath) {
			k.Term.Print("Network Saved.", StyleOK)
		} else {
			k.Term.Print("Save Failed", StyleErr)
		}
	}
	return nil, nil
}

func (k *Kernel) cmdIfconfig(args []string) (*Request, error) {
	ip := k.Radio.IPv4()
	if ip == "" {
		k.Term.Print("No WiFi", StyleErr)
		return nil, nil
	}
	k.Term.Print("IP: " + ip)
	return nil, nil
}

// cmdWget fetches a URL over a raw byte stream and writes the response to a
// file. It blocks the interface until the transfer finishes, like everything
// else here.
func (k *Kernel) cmdWget(args []string) (*Request, error) {
	if len(args) < 2 {
		return nil, shellerr.Usage("wget <url> <file>")
	}
	p := k.resolve(args[1])
	if err := k.checkAccess(p, true); err != nil {
		return nil, err
	}
	u, err := url.Parse(args[0])
	if err != nil || u.Host == "" {
		return nil, shellerr.Usage("wget <url> <file>")
	}
	port := 80
	if s := u.Port(); s != "" {
		port, err = strconv.Atoi(s)
		if err != nil {
			return nil, shellerr.Usage("wget <url> <file>")
		}
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	k.Term.Print("Get "+args[0]+"...", StyleInfo)
	conn, err := k.Radio.Dial(u.Hostname(), port)
	if err != nil {
		return nil, shellerr.IO("wget", err)
	}
	defer conn.Close()
	req := fmt.Sprintf("GET %s HTTP/1.1\r\nHost: %s\r\nConnection: close\r\n\r\n", path, u.Hostname())
	if _, err := conn.Write([]byte(req)); err != nil {
		return nil, shellerr.IO("wget", err)
	}
	body, err := io.ReadAll(conn)
	if err != nil {
		return nil, shellerr.IO("wget", err)
	}
	if err := k.FS.WriteFile(p, body); err != nil {
		return nil, shellerr.IO("write", err)
	}
	k.Term.Print("Done.")
	return nil, nil
}

// cmdNtp probes an NTP server and applies the result as a clock offset for
// the time command. The device has no settable RTC on the host side.
func (k *Kernel) cmdNtp(args []string) (*Request, error) {
	if k.Radio.IPv4() == "" {
		k.Term.Print("No WiFi", StyleErr)
		return nil, nil
	}
	offset := 0
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			offset = n
		}
	}
	k.Term.Print(fmt.Sprintf("Syncing (UTC%+d)...", offset), StyleInfo)
	t, err := netio.NTP(k.Radio, "pool.ntp.org", offset)
	if err != nil {
		return nil, shellerr.IO("ntp", err)
	}
	k.clockOffset = time.Until(t)
	k.Term.Print("Time Set!", StyleOK)
	return k.cmdTime(nil)
}
