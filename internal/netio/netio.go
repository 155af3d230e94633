// Package netio is the network collaborator boundary: wireless association,
// name resolution and raw byte-stream sockets as the shell's network builtins
// consume them. Every operation can fail and is reported to the user; nothing
// here may take the shell down.
package netio

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrNotConnected is returned by operations that need an association first.
var ErrNotConnected = errors.New("no network connection")

// Network is one entry from a scan.
type Network struct {
	SSID string
	RSSI int
}

// Radio is the radio/transport surface. Connect associates by credential;
// Dial and DialUDP open raw streams once associated.
type Radio interface {
	Scan() ([]Network, error)
	Connect(ssid, password string) error
	// IPv4 returns the assigned address, or "" when not associated.
	IPv4() string
	Lookup(host string) (string, error)
	Dial(host string, port int) (net.Conn, error)
	DialUDP(host string, port int) (net.Conn, error)
}

// HostRadio simulates the radio on a development host: Connect records the
// association and borrows the host's real network stack for sockets. Scan
// reports the configured neighborhood, which defaults to empty (scanning real
// hardware is not possible from here).
type HostRadio struct {
	Neighborhood []Network

	ssid string
}

func (h *HostRadio) Scan() ([]Network, error) {
	if len(h.Neighborhood) == 0 {
		return nil, errors.New("no networks in range")
	}
	return h.Neighborhood, nil
}

func (h *HostRadio) Connect(ssid, password string) error {
	if ssid == "" {
		return errors.New("empty ssid")
	}
	h.ssid = ssid
	return nil
}

func (h *HostRadio) IPv4() string {
	if h.ssid == "" {
		return ""
	}
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, a := range addrs {
		ipn, ok := a.(*net.IPNet)
		if !ok || ipn.IP.IsLoopback() {
			continue
		}
		if v4 := ipn.IP.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ""
}

func (h *HostRadio) Lookup(host string) (string, error) {
	if h.ssid == "" {
		return "", ErrNotConnected
	}
	addrs, err := net.LookupHost(host)
	if err != nil {
		return "", err
	}
	return addrs[0], nil
}

func (h *HostRadio) Dial(host string, port int) (net.Conn, error) {
	if h.ssid == "" {
		return nil, ErrNotConnected
	}
	return net.Dial("tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
}

func (h *HostRadio) DialUDP(host string, port int) (net.Conn, error) {
	if h.ssid == "" {
		return nil, ErrNotConnected
	}
	return net.Dial("udp", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
}

// NTP implements the time-sync probe: one 48-byte request, the transmit
// timestamp out of the reply, shifted by the UTC offset in hours. The 5
// second deadline is the only timeout the shell carries.
func NTP(radio Radio, host string, offsetHours int) (time.Time, error) {
	conn, err := radio.DialUDP(host, 123)
	if err != nil {
		return time.Time{}, err
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	packet := make([]byte, 48)
	packet[0] = 0x1B
	if _, err := conn.Write(packet); err != nil {
		return time.Time{}, err
	}
	if _, err := conn.Read(packet); err != nil {
		return time.Time{}, err
	}
	secs := uint32(packet[40])<<24 | uint32(packet[41])<<16 | uint32(packet[42])<<8 | uint32(packet[43])
	const ntpEpochOffset = 2208988800
	unix := int64(secs) - ntpEpochOffset + int64(offsetHours)*3600
	return time.Unix(unix, 0), nil
}
